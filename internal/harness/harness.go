// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package harness

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/metrics"
	"github.com/tomtom215/canvas-console/internal/models"
)

// ExperimentPrefix names the courses created by Experiments.
const ExperimentPrefix = "CS1010 Version "

// ExperimentCount is how many experiment courses are created.
const ExperimentCount = 10

// DefaultPerPage is the listing page size used by Reset.
const DefaultPerPage = 200

// Range returns [s, e), or an empty slice when e <= s.
func Range(s, e int) []int {
	if e <= s {
		return []int{}
	}
	out := make([]int, 0, e-s)
	for i := s; i < e; i++ {
		out = append(out, i)
	}
	return out
}

// ErrNoAccount is returned when courses are created without an account id.
var ErrNoAccount = errors.New("no account id configured for course creation")

// Harness seeds and resets the courses of one Canvas account.
type Harness struct {
	api       canvas.API
	accountID int64
	perPage   int
}

// New creates a Harness that creates courses under accountID.
func New(api canvas.API, accountID int64, perPage int) *Harness {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Harness{api: api, accountID: accountID, perPage: perPage}
}

// List returns the courses visible to the token.
func (h *Harness) List(ctx context.Context) ([]models.CourseSummary, error) {
	return h.api.ListCourses(ctx, h.perPage)
}

// Delete deletes one course.
func (h *Harness) Delete(ctx context.Context, courseID int64) (models.DeleteResult, error) {
	result, err := h.api.DeleteCourse(ctx, courseID)
	if err != nil {
		return result, fmt.Errorf("delete course %d: %w", courseID, err)
	}
	metrics.HarnessCoursesDeleted.Inc()
	return result, nil
}

// Reset deletes every course visible to the token.
func (h *Harness) Reset(ctx context.Context) ([]models.DeleteResult, error) {
	results, err := h.api.DeleteAllCourses(ctx, h.perPage)
	if err != nil {
		return nil, fmt.Errorf("reset courses: %w", err)
	}
	metrics.HarnessCoursesDeleted.Add(float64(len(results)))
	logging.Ctx(ctx).Info().Int("deleted", len(results)).Msg("Courses reset")
	return results, nil
}

// Seed creates prefix0 ... prefix{n-1} concurrently. The result is in name
// order. The first failure cancels the remaining creates.
func (h *Harness) Seed(ctx context.Context, prefix string, n int) ([]models.CourseSummary, error) {
	names := make([]string, 0, n)
	for _, i := range Range(0, n) {
		names = append(names, prefix+strconv.Itoa(i))
	}
	return h.CreateAll(ctx, names)
}

// Experiments creates "CS1010 Version 0" through "CS1010 Version 9".
func (h *Harness) Experiments(ctx context.Context) ([]models.CourseSummary, error) {
	return h.Seed(ctx, ExperimentPrefix, ExperimentCount)
}

// CreateAll creates one course per name concurrently.
func (h *Harness) CreateAll(ctx context.Context, names []string) ([]models.CourseSummary, error) {
	if h.accountID == 0 {
		return nil, ErrNoAccount
	}
	created := make([]models.CourseSummary, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			course, _, err := h.api.CreateCourse(gctx, h.accountID, name)
			if err != nil {
				return fmt.Errorf("create course %q: %w", name, err)
			}
			metrics.HarnessCoursesCreated.Inc()
			created[i] = course
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int64("account_id", h.accountID).
		Int("created", len(created)).
		Msg("Courses created")
	return created, nil
}
