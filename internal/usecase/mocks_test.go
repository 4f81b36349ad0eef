package usecase_test

import (
	"context"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"

	"github.com/google/uuid"
)

// Function-field mocks. Unset fields return zero values so each test only
// wires the calls it cares about.

type petRepoMock struct {
	createFn        func(ctx context.Context, pet *entity.Pet) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.Pet, error)
	findByOwnerFn   func(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error)
	searchFn        func(ctx context.Context, filter repository.PetSearchFilter, limit, offset int) ([]*entity.Pet, error)
	countSearchFn   func(ctx context.Context, filter repository.PetSearchFilter) (int64, error)
	updateFn        func(ctx context.Context, pet *entity.Pet) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	incrementViewFn func(ctx context.Context, id uuid.UUID) error
}

func (m *petRepoMock) Create(ctx context.Context, pet *entity.Pet) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, pet)
}

func (m *petRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *petRepoMock) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
	if m.findByOwnerFn == nil {
		return nil, nil
	}
	return m.findByOwnerFn(ctx, ownerID)
}

func (m *petRepoMock) Search(ctx context.Context, filter repository.PetSearchFilter, limit, offset int) ([]*entity.Pet, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, filter, limit, offset)
}

func (m *petRepoMock) CountSearch(ctx context.Context, filter repository.PetSearchFilter) (int64, error) {
	if m.countSearchFn == nil {
		return 0, nil
	}
	return m.countSearchFn(ctx, filter)
}

func (m *petRepoMock) Update(ctx context.Context, pet *entity.Pet) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, pet)
}

func (m *petRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *petRepoMock) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewFn == nil {
		return nil
	}
	return m.incrementViewFn(ctx, id)
}

type bookingRepoMock struct {
	findByIDFn            func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByUserFn          func(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	countByUserFn         func(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus) (int64, error)
	findOverlappingFn     func(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error)
	findForScheduleFn     func(ctx context.Context, userID uuid.UUID, rng entity.DateRange, asOwner *bool) ([]*entity.Booking, error)
	createGuardedFn       func(ctx context.Context, booking *entity.Booking) (*repository.Conflicts, error)
	updateStatusGuardedFn func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error)
	sumCompletedFn        func(ctx context.Context, ownerID uuid.UUID) (float64, float64, int64, error)
	countPetActiveFn      func(ctx context.Context, petID uuid.UUID) (int64, error)
}

func (m *bookingRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *bookingRepoMock) FindByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	if m.findByUserFn == nil {
		return nil, nil
	}
	return m.findByUserFn(ctx, userID, asOwner, status, limit, offset)
}

func (m *bookingRepoMock) CountByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus) (int64, error) {
	if m.countByUserFn == nil {
		return 0, nil
	}
	return m.countByUserFn(ctx, userID, asOwner, status)
}

func (m *bookingRepoMock) FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error) {
	if m.findOverlappingFn == nil {
		return nil, nil
	}
	return m.findOverlappingFn(ctx, petID, rng, excludeID)
}

func (m *bookingRepoMock) FindForUserSchedule(ctx context.Context, userID uuid.UUID, rng entity.DateRange, asOwner *bool) ([]*entity.Booking, error) {
	if m.findForScheduleFn == nil {
		return nil, nil
	}
	return m.findForScheduleFn(ctx, userID, rng, asOwner)
}

func (m *bookingRepoMock) CreateGuarded(ctx context.Context, booking *entity.Booking) (*repository.Conflicts, error) {
	if m.createGuardedFn == nil {
		return nil, nil
	}
	return m.createGuardedFn(ctx, booking)
}

func (m *bookingRepoMock) UpdateStatusGuarded(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error) {
	if m.updateStatusGuardedFn == nil {
		return nil, nil
	}
	return m.updateStatusGuardedFn(ctx, bookingID, status)
}

func (m *bookingRepoMock) SumCompletedForOwner(ctx context.Context, ownerID uuid.UUID) (float64, float64, int64, error) {
	if m.sumCompletedFn == nil {
		return 0, 0, 0, nil
	}
	return m.sumCompletedFn(ctx, ownerID)
}

func (m *bookingRepoMock) CountPetActive(ctx context.Context, petID uuid.UUID) (int64, error) {
	if m.countPetActiveFn == nil {
		return 0, nil
	}
	return m.countPetActiveFn(ctx, petID)
}

type blockedDateRepoMock struct {
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error)
	findByPetFn       func(ctx context.Context, petID uuid.UUID) ([]*entity.BlockedDate, error)
	findByPetsFn      func(ctx context.Context, petIDs []uuid.UUID, rng entity.DateRange) ([]*entity.BlockedDate, error)
	findOverlappingFn func(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error)
	createGuardedFn   func(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error)
	updateGuardedFn   func(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error)
	deleteFn          func(ctx context.Context, id uuid.UUID) error
}

func (m *blockedDateRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *blockedDateRepoMock) FindByPet(ctx context.Context, petID uuid.UUID) ([]*entity.BlockedDate, error) {
	if m.findByPetFn == nil {
		return nil, nil
	}
	return m.findByPetFn(ctx, petID)
}

func (m *blockedDateRepoMock) FindByPets(ctx context.Context, petIDs []uuid.UUID, rng entity.DateRange) ([]*entity.BlockedDate, error) {
	if m.findByPetsFn == nil {
		return nil, nil
	}
	return m.findByPetsFn(ctx, petIDs, rng)
}

func (m *blockedDateRepoMock) FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error) {
	if m.findOverlappingFn == nil {
		return nil, nil
	}
	return m.findOverlappingFn(ctx, petID, rng, excludeID)
}

func (m *blockedDateRepoMock) CreateGuarded(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error) {
	if m.createGuardedFn == nil {
		return nil, nil
	}
	return m.createGuardedFn(ctx, block)
}

func (m *blockedDateRepoMock) UpdateGuarded(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error) {
	if m.updateGuardedFn == nil {
		return nil, nil
	}
	return m.updateGuardedFn(ctx, block)
}

func (m *blockedDateRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type reviewRepoMock struct {
	createFn                   func(ctx context.Context, review *entity.Review) error
	findByIDFn                 func(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	findByBookingAndReviewerFn func(ctx context.Context, bookingID, reviewerID uuid.UUID) (*entity.Review, error)
	findByPetFn                func(ctx context.Context, petID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	countByPetFn               func(ctx context.Context, petID uuid.UUID) (int64, error)
	averageRatingFn            func(ctx context.Context, petID uuid.UUID) (float64, error)
	deleteFn                   func(ctx context.Context, id uuid.UUID) error
}

func (m *reviewRepoMock) Create(ctx context.Context, review *entity.Review) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, review)
}

func (m *reviewRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *reviewRepoMock) FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*entity.Review, error) {
	if m.findByBookingAndReviewerFn == nil {
		return nil, nil
	}
	return m.findByBookingAndReviewerFn(ctx, bookingID, reviewerID)
}

func (m *reviewRepoMock) FindByPet(ctx context.Context, petID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	if m.findByPetFn == nil {
		return nil, nil
	}
	return m.findByPetFn(ctx, petID, limit, offset)
}

func (m *reviewRepoMock) CountByPet(ctx context.Context, petID uuid.UUID) (int64, error) {
	if m.countByPetFn == nil {
		return 0, nil
	}
	return m.countByPetFn(ctx, petID)
}

func (m *reviewRepoMock) AverageRatingByPet(ctx context.Context, petID uuid.UUID) (float64, error) {
	if m.averageRatingFn == nil {
		return 0, nil
	}
	return m.averageRatingFn(ctx, petID)
}

func (m *reviewRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type notificationRepoMock struct {
	createFn           func(ctx context.Context, notification *entity.Notification) error
	findByRecipientFn  func(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	countByRecipientFn func(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error)
	countUnreadFn      func(ctx context.Context, recipientID uuid.UUID) (int64, error)
	markReadFn         func(ctx context.Context, id, recipientID uuid.UUID) error
	markAllReadFn      func(ctx context.Context, recipientID uuid.UUID) error
}

func (m *notificationRepoMock) Create(ctx context.Context, notification *entity.Notification) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, notification)
}

func (m *notificationRepoMock) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if m.findByRecipientFn == nil {
		return nil, nil
	}
	return m.findByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}

func (m *notificationRepoMock) CountByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error) {
	if m.countByRecipientFn == nil {
		return 0, nil
	}
	return m.countByRecipientFn(ctx, recipientID, unreadOnly)
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if m.countUnreadFn == nil {
		return 0, nil
	}
	return m.countUnreadFn(ctx, recipientID)
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if m.markReadFn == nil {
		return nil
	}
	return m.markReadFn(ctx, id, recipientID)
}

func (m *notificationRepoMock) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if m.markAllReadFn == nil {
		return nil
	}
	return m.markAllReadFn(ctx, recipientID)
}

type userRepoMock struct {
	createFn            func(ctx context.Context, user *entity.User) error
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	findByEmailFn       func(ctx context.Context, email string) (*entity.User, error)
	updateFn            func(ctx context.Context, user *entity.User) error
	markEmailVerifiedFn func(ctx context.Context, id uuid.UUID) error
}

func (m *userRepoMock) Create(ctx context.Context, user *entity.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, user)
}

func (m *userRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn == nil {
		return nil, nil
	}
	return m.findByEmailFn(ctx, email)
}

func (m *userRepoMock) Update(ctx context.Context, user *entity.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, user)
}

func (m *userRepoMock) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	if m.markEmailVerifiedFn == nil {
		return nil
	}
	return m.markEmailVerifiedFn(ctx, id)
}

type conversationRepoMock struct {
	createFn           func(ctx context.Context, conversation *entity.Conversation) error
	findByIDFn         func(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	findBetweenFn      func(ctx context.Context, a, b uuid.UUID) (*entity.Conversation, error)
	findByUserFn       func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error)
	countByUserFn      func(ctx context.Context, userID uuid.UUID) (int64, error)
	addMessageFn       func(ctx context.Context, message *entity.Message) error
	messagesFn         func(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error)
	lastMessageFn      func(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error)
	countUnreadFn      func(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)
	markMessagesReadFn func(ctx context.Context, conversationID, readerID uuid.UUID) error
}

func (m *conversationRepoMock) Create(ctx context.Context, conversation *entity.Conversation) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, conversation)
}

func (m *conversationRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}

func (m *conversationRepoMock) FindBetween(ctx context.Context, a, b uuid.UUID) (*entity.Conversation, error) {
	if m.findBetweenFn == nil {
		return nil, nil
	}
	return m.findBetweenFn(ctx, a, b)
}

func (m *conversationRepoMock) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	if m.findByUserFn == nil {
		return nil, nil
	}
	return m.findByUserFn(ctx, userID, limit, offset)
}

func (m *conversationRepoMock) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.countByUserFn == nil {
		return 0, nil
	}
	return m.countByUserFn(ctx, userID)
}

func (m *conversationRepoMock) AddMessage(ctx context.Context, message *entity.Message) error {
	if m.addMessageFn == nil {
		return nil
	}
	return m.addMessageFn(ctx, message)
}

func (m *conversationRepoMock) Messages(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error) {
	if m.messagesFn == nil {
		return nil, nil
	}
	return m.messagesFn(ctx, conversationID)
}

func (m *conversationRepoMock) LastMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error) {
	if m.lastMessageFn == nil {
		return nil, nil
	}
	return m.lastMessageFn(ctx, conversationID)
}

func (m *conversationRepoMock) CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	if m.countUnreadFn == nil {
		return 0, nil
	}
	return m.countUnreadFn(ctx, conversationID, readerID)
}

func (m *conversationRepoMock) MarkMessagesRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	if m.markMessagesReadFn == nil {
		return nil
	}
	return m.markMessagesReadFn(ctx, conversationID, readerID)
}
