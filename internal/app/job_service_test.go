package app

import (
	"context"
	"testing"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/user"
)

func newJobServiceFixture() (*fakeJobRepo, *fakeStatsRepo, *JobService) {
	jobs := newFakeJobRepo()
	statsRepo := &fakeStatsRepo{}
	return jobs, statsRepo, NewJobService(jobs, NewStatsService(statsRepo, nil), nil)
}

func TestJobCreateDefaultsToActive(t *testing.T) {
	_, statsRepo, service := newJobServiceFixture()

	created, err := service.Create(context.Background(), job.Job{
		OwnerID:   common.NewUUID(),
		OwnerRole: user.RoleRecruiter,
		Title:     "Backend Engineer",
		Category:  "engineering",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != job.StatusActive {
		t.Fatalf("expected default status active, got %q", created.Status)
	}
	if statsRepo.callCount() == 0 {
		t.Fatal("expected stats recompute after create")
	}
}

func TestJobCreateValidation(t *testing.T) {
	_, _, service := newJobServiceFixture()

	cases := []struct {
		name string
		j    job.Job
	}{
		{name: "missing title", j: job.Job{OwnerID: common.NewUUID(), OwnerRole: user.RoleRecruiter, Category: "engineering"}},
		{name: "missing category", j: job.Job{OwnerID: common.NewUUID(), OwnerRole: user.RoleRecruiter, Title: "Backend Engineer"}},
		{name: "bad role", j: job.Job{OwnerID: common.NewUUID(), OwnerRole: "ghost", Title: "Backend Engineer", Category: "engineering"}},
		{name: "bad status", j: job.Job{OwnerID: common.NewUUID(), OwnerRole: user.RoleRecruiter, Title: "Backend Engineer", Category: "engineering", Status: "paused"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Create(context.Background(), tc.j); !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestJobUpdateStatusNormalizesInput(t *testing.T) {
	_, _, service := newJobServiceFixture()
	ownerID := common.NewUUID()
	created, err := service.Create(context.Background(), job.Job{
		OwnerID:   ownerID,
		OwnerRole: user.RoleRecruiter,
		Title:     "Backend Engineer",
		Category:  "engineering",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), ownerID, created.ID, " Closed ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.StatusClosed {
		t.Fatalf("expected status closed, got %q", updated.Status)
	}
}

func TestJobMutationsForbiddenForNonOwner(t *testing.T) {
	_, _, service := newJobServiceFixture()
	created, err := service.Create(context.Background(), job.Job{
		OwnerID:   common.NewUUID(),
		OwnerRole: user.RoleRecruiter,
		Title:     "Backend Engineer",
		Category:  "engineering",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stranger := common.NewUUID()
	if _, err := service.UpdateStatus(context.Background(), stranger, created.ID, job.StatusClosed); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden on status update, got %v", err)
	}
	if err := service.Delete(context.Background(), stranger, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden on delete, got %v", err)
	}
}

func TestJobListActiveFiltersByStatus(t *testing.T) {
	_, _, service := newJobServiceFixture()
	ownerID := common.NewUUID()
	if _, err := service.Create(context.Background(), job.Job{OwnerID: ownerID, OwnerRole: user.RoleRecruiter, Title: "Open Role", Category: "engineering"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := service.Create(context.Background(), job.Job{OwnerID: ownerID, OwnerRole: user.RoleRecruiter, Title: "Closed Role", Category: "engineering", Status: job.StatusClosed}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	items, err := service.ListActive(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one active job, got %d", len(items))
	}
	if items[0].Title != "Open Role" {
		t.Fatalf("expected the active job, got %q", items[0].Title)
	}
}
