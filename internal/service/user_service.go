package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/userstore"
)

// Validation and state errors surfaced to handlers with specific messages.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrMissingFields      = errors.New("username and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEntryNotFound      = errors.New("checklist entry not found")
	ErrInvalidUserRating  = errors.New("user rating must be between 1 and 9")
	ErrShareTargetMissing = errors.New("share target user not found")
	ErrSelfShare          = errors.New("cannot share with yourself")
)

const watchedDateLayout = "2006-01-02"

// UserService implements auth, profile, checklist and notification logic on
// top of the user-record store. Every operation is a fresh
// load-modify-save; nothing is cached across calls.
type UserService struct {
	store userstore.Store
	now   func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(store userstore.Store) *UserService {
	return &UserService{store: store, now: time.Now}
}

// CheckLogin reports whether the username exists and the password matches
// exactly (case-sensitive plaintext compare).
func (s *UserService) CheckLogin(username, password string) (bool, error) {
	record, err := s.store.Get(username)
	if err == userstore.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return record.Password == password, nil
}

// Register creates a new account. It fails without mutating state when the
// username is taken, the confirmation does not match, or the email is
// obviously malformed.
func (s *UserService) Register(req models.RegisterRequest) error {
	if req.Username == "" || req.Password == "" {
		return ErrMissingFields
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return ErrPasswordMismatch
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return ErrInvalidEmail
	}

	if _, err := s.store.Get(req.Username); err == nil {
		return ErrUsernameTaken
	} else if err != userstore.ErrNotFound {
		return err
	}

	return s.store.Put(req.Username, models.UserRecord{
		Password:       req.Password,
		FullName:       req.FullName,
		Email:          req.Email,
		MovieChecklist: map[string]models.ChecklistEntry{},
		Notifications:  []models.Notification{},
	})
}

// Profile returns the user-visible view of a record.
func (s *UserService) Profile(username string) (*models.Profile, error) {
	record, err := s.store.Get(username)
	if err != nil {
		return nil, err
	}
	unread := 0
	for _, n := range record.Notifications {
		if !n.Read {
			unread++
		}
	}
	return &models.Profile{
		Username:       username,
		FullName:       record.FullName,
		DOB:            record.DOB,
		Email:          record.Email,
		AvatarPath:     record.AvatarPath,
		MovieChecklist: record.MovieChecklist,
		Unread:         unread,
	}, nil
}

// UpdateProfile applies only the fields supplied in the request. Nil
// pointers mean "no change"; an explicit empty string is a valid update.
func (s *UserService) UpdateProfile(username string, req models.UpdateProfileRequest) error {
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	if req.FullName != nil {
		record.FullName = *req.FullName
	}
	if req.DOB != nil {
		record.DOB = req.DOB
	}
	if req.Email != nil {
		if *req.Email != "" && !strings.Contains(*req.Email, "@") {
			return ErrInvalidEmail
		}
		record.Email = *req.Email
	}
	if req.Password != nil {
		record.Password = *req.Password
	}
	if req.AvatarPath != nil {
		record.AvatarPath = req.AvatarPath
	}
	return s.store.Put(username, record)
}

// Checklist returns the user's checklist.
func (s *UserService) Checklist(username string) (map[string]models.ChecklistEntry, error) {
	record, err := s.store.Get(username)
	if err != nil {
		return nil, err
	}
	return record.MovieChecklist, nil
}

// AddChecklistEntry adds a movie to the checklist. Re-adding an existing
// movie resets it to unwatched, matching the original add flow.
func (s *UserService) AddChecklistEntry(username string, req models.AddChecklistRequest) error {
	if req.MovieID == "" || req.Title == "" {
		return fmt.Errorf("movie_id and title are required")
	}
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	record.MovieChecklist[req.MovieID] = models.ChecklistEntry{
		Title:   req.Title,
		Watched: false,
		Poster:  req.Poster,
		Rating:  req.Rating,
	}
	return s.store.Put(username, record)
}

// UpdateChecklistEntry flips the watched flag and/or sets the user rating.
// Marking watched stamps today's date; un-watching leaves the stamp, the
// store records when the movie was last watched.
func (s *UserService) UpdateChecklistEntry(username, movieID string, req models.UpdateChecklistRequest) error {
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	entry, ok := record.MovieChecklist[movieID]
	if !ok {
		return ErrEntryNotFound
	}
	if req.Watched != nil {
		if *req.Watched && !entry.Watched {
			date := s.now().Format(watchedDateLayout)
			entry.WatchedDate = &date
		}
		entry.Watched = *req.Watched
	}
	if req.UserRating != nil {
		if *req.UserRating < 1 || *req.UserRating > 9 {
			return ErrInvalidUserRating
		}
		entry.UserRating = req.UserRating
	}
	record.MovieChecklist[movieID] = entry
	return s.store.Put(username, record)
}

// RemoveChecklistEntry deletes the entry's key entirely.
func (s *UserService) RemoveChecklistEntry(username, movieID string) error {
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	if _, ok := record.MovieChecklist[movieID]; !ok {
		return ErrEntryNotFound
	}
	delete(record.MovieChecklist, movieID)
	return s.store.Put(username, record)
}

// ShareChecklistEntry appends exactly one unread notification to the
// target user. The sender's record is untouched.
func (s *UserService) ShareChecklistEntry(sender, movieID, target string) error {
	if sender == target {
		return ErrSelfShare
	}
	record, err := s.store.Get(sender)
	if err != nil {
		return err
	}
	entry, ok := record.MovieChecklist[movieID]
	if !ok {
		return ErrEntryNotFound
	}

	targetRecord, err := s.store.Get(target)
	if err == userstore.ErrNotFound {
		return ErrShareTargetMissing
	}
	if err != nil {
		return err
	}

	targetRecord.Notifications = append(targetRecord.Notifications, models.Notification{
		Message: fmt.Sprintf("%s shared %q with you", sender, entry.Title),
		Read:    false,
	})
	return s.store.Put(target, targetRecord)
}

// Notifications returns the user's notifications in order.
func (s *UserService) Notifications(username string) ([]models.Notification, error) {
	record, err := s.store.Get(username)
	if err != nil {
		return nil, err
	}
	return record.Notifications, nil
}

// MarkNotificationsRead bulk-marks every notification as read.
func (s *UserService) MarkNotificationsRead(username string) error {
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	for i := range record.Notifications {
		record.Notifications[i].Read = true
	}
	return s.store.Put(username, record)
}

// ClearNotifications removes every notification.
func (s *UserService) ClearNotifications(username string) error {
	record, err := s.store.Get(username)
	if err != nil {
		return err
	}
	record.Notifications = []models.Notification{}
	return s.store.Put(username, record)
}
