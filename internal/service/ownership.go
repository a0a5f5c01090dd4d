package service

import (
	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/models"
)

// AssertIsOwner fails with InvalidOwner unless the todo has an owner and it is the caller.
// A todo whose owner reference is gone is treated the same as someone else's todo.
func AssertIsOwner(todo *models.Todo, id auth.Identity) error {
	if !todo.OwnedBy(id.ID) {
		return apperr.ErrInvalidOwner
	}
	return nil
}

// AssertNotSelfAssignment fails when the candidate manager is the todo's owner.
func AssertNotSelfAssignment(todo *models.Todo, candidateUserID int64) error {
	if todo.OwnedBy(candidateUserID) {
		return apperr.ErrSelfAssignmentDenied
	}
	return nil
}

// assertActingUserOwns is the removal-path variant of AssertIsOwner. Its
// messages name the ids involved so operators can trace broken ownership.
func assertActingUserOwns(todo *models.Todo, actingUserID int64) error {
	if !todo.HasOwner() {
		return apperr.Newf(apperr.KindInvalidOwner, "Todo creator is not valid. %d", actingUserID)
	}
	if *todo.OwnerID != actingUserID {
		return apperr.Newf(apperr.KindInvalidOwner, "Only the todo creator can remove managers. %d", *todo.OwnerID)
	}
	return nil
}
