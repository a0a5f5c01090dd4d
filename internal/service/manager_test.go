package service

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/internal/events"
)

func TestManagerService_EndToEnd(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()

	u1 := f.user(t, "u1@example.com", "USER")
	u2 := f.user(t, "u2@example.com", "USER")
	td := f.todo(t, u1)
	c.Assert(u1.ID, qt.Equals, int64(1))
	c.Assert(td.ID, qt.Equals, int64(1))

	saved, err := f.managerSvc.AssignManager(ctx, u1, td.ID, u2.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(saved.User, qt.DeepEquals, UserView{ID: u2.ID, Email: "u2@example.com"})

	list, err := f.managerSvc.ListManagers(ctx, td.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.DeepEquals, []ManagerView{saved})

	c.Assert(f.managerSvc.RemoveManager(ctx, u1, td.ID, saved.ID), qt.IsNil)

	list, err = f.managerSvc.ListManagers(ctx, td.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)
	c.Assert(list, qt.IsNotNil)

	c.Assert(f.events.types(), qt.DeepEquals, []string{events.TypeManagerAssigned, events.TypeManagerRemoved})
}

func TestAssignManager_TodoNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	u1 := f.user(t, "u1@example.com", "USER")
	u2 := f.user(t, "u2@example.com", "USER")

	_, err := f.managerSvc.AssignManager(context.Background(), u1, 99, u2.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrTodoNotFound)
	c.Assert(err.Error(), qt.Equals, "Todo not found")
	c.Assert(f.managers.creates, qt.Equals, 0)
}

func TestAssignManager_OnlyOwnerMayAssign(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	intruder := f.user(t, "intruder@example.com", "USER")
	admin := f.user(t, "admin@example.com", "ADMIN")
	candidate := f.user(t, "candidate@example.com", "USER")
	td := f.todo(t, owner)

	for _, caller := range []auth.Identity{intruder, admin, candidate} {
		for _, target := range []int64{owner.ID, intruder.ID, candidate.ID, 999} {
			_, err := f.managerSvc.AssignManager(ctx, caller, td.ID, target)
			c.Assert(err, qt.ErrorIs, apperr.ErrInvalidOwner, qt.Commentf("caller %d target %d", caller.ID, target))
		}
	}
	c.Assert(f.managers.creates, qt.Equals, 0)
}

func TestAssignManager_OwnerlessTodo(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	other := f.user(t, "other@example.com", "USER")
	td := f.todo(t, owner)
	c.Assert(f.users.Delete(ctx, owner.ID), qt.IsNil)

	_, err := f.managerSvc.AssignManager(ctx, owner, td.ID, other.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidOwner)
	c.Assert(f.managers.creates, qt.Equals, 0)
}

func TestAssignManager_CandidateMissing(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", "USER")
	td := f.todo(t, owner)

	_, err := f.managerSvc.AssignManager(context.Background(), owner, td.ID, 42)
	c.Assert(err, qt.ErrorIs, apperr.ErrManagerUserNotFound)
	c.Assert(err.Error(), qt.Equals, "Manager user to register does not exist.")
}

func TestAssignManager_SelfAssignmentDenied(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", "USER")
	td := f.todo(t, owner)

	_, err := f.managerSvc.AssignManager(context.Background(), owner, td.ID, owner.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrSelfAssignmentDenied)
	c.Assert(f.managers.creates, qt.Equals, 0)
	c.Assert(f.events.types(), qt.HasLen, 0)
}

func TestAssignManager_DuplicatePairAllowed(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	helper := f.user(t, "helper@example.com", "USER")
	td := f.todo(t, owner)

	first, err := f.managerSvc.AssignManager(ctx, owner, td.ID, helper.ID)
	c.Assert(err, qt.IsNil)
	second, err := f.managerSvc.AssignManager(ctx, owner, td.ID, helper.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(second.ID, qt.Not(qt.Equals), first.ID)

	list, err := f.managerSvc.ListManagers(ctx, td.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 2)
}

func TestAssignManager_PublishFailureIgnored(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	owner := f.user(t, "owner@example.com", "USER")
	helper := f.user(t, "helper@example.com", "USER")
	td := f.todo(t, owner)

	_, err := f.managerSvc.AssignManager(context.Background(), owner, td.ID, helper.ID)
	c.Assert(err, qt.IsNil)
}

func TestListManagers_TodoNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)

	_, err := f.managerSvc.ListManagers(context.Background(), 5)
	c.Assert(err, qt.ErrorIs, apperr.ErrTodoNotFound)
}

func TestListManagers_Empty(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", "USER")
	td := f.todo(t, owner)

	list, err := f.managerSvc.ListManagers(context.Background(), td.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.IsNotNil)
	c.Assert(list, qt.HasLen, 0)
}

func TestRemoveManager_UserCheckedFirst(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)

	ghost := auth.Identity{ID: 77, Email: "ghost@example.com", Role: "USER"}
	err := f.managerSvc.RemoveManager(context.Background(), ghost, 88, 99)
	c.Assert(err, qt.ErrorIs, apperr.ErrUserNotFound)
	c.Assert(errors.Is(err, apperr.ErrTodoNotFound), qt.IsFalse)
}

func TestRemoveManager_TodoNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", "USER")

	err := f.managerSvc.RemoveManager(context.Background(), owner, 88, 99)
	c.Assert(err, qt.ErrorIs, apperr.ErrTodoNotFound)
}

func TestRemoveManager_InvalidOwner(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	other := f.user(t, "other@example.com", "USER")
	td := f.todo(t, owner)
	m, err := f.managerSvc.AssignManager(ctx, owner, td.ID, other.ID)
	c.Assert(err, qt.IsNil)

	err = f.managerSvc.RemoveManager(ctx, other, td.ID, m.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidOwner)
	c.Assert(err.Error(), qt.Equals, "Only the todo creator can remove managers. 1")
	c.Assert(f.managers.deletes, qt.Equals, 0)
}

func TestRemoveManager_OwnerlessTodo(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	other := f.user(t, "other@example.com", "USER")
	td := f.todo(t, owner)
	c.Assert(f.users.Delete(ctx, owner.ID), qt.IsNil)

	err := f.managerSvc.RemoveManager(ctx, other, td.ID, 1)
	c.Assert(err, qt.ErrorIs, apperr.ErrInvalidOwner)
	c.Assert(err.Error(), qt.Equals, "Todo creator is not valid. 2")
}

func TestRemoveManager_ManagerNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", "USER")
	td := f.todo(t, owner)

	err := f.managerSvc.RemoveManager(context.Background(), owner, td.ID, 404)
	c.Assert(err, qt.ErrorIs, apperr.ErrManagerNotFound)
	c.Assert(err.Error(), qt.Equals, "Manager not found")
}

func TestRemoveManager_CrossTodoGuard(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", "USER")
	helper := f.user(t, "helper@example.com", "USER")
	t1 := f.todo(t, owner)
	t2 := f.todo(t, owner)

	m, err := f.managerSvc.AssignManager(ctx, owner, t2.ID, helper.ID)
	c.Assert(err, qt.IsNil)

	err = f.managerSvc.RemoveManager(ctx, owner, t1.ID, m.ID)
	c.Assert(err, qt.ErrorIs, apperr.ErrManagerNotAssociated)
	c.Assert(f.managers.deletes, qt.Equals, 0)

	list, err := f.managerSvc.ListManagers(ctx, t2.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 1)
	c.Assert(list[0].ID, qt.Equals, m.ID)
}
