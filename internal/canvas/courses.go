// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/canvas-console/internal/models"
)

// DefaultCourseView is the landing page of courses created by the console.
const DefaultCourseView = "modules"

// Self returns the user the token belongs to.
func (c *Client) Self(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "self", "users/self", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the profile of the token's user.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.getJSON(ctx, "profile", "users/self/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Accounts lists the accounts the token can administer.
func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.getJSON(ctx, "accounts", "accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListCourses returns the token user's courses reduced to {id, name}.
// Only the first page of perPage entries is requested.
func (c *Client) ListCourses(ctx context.Context, perPage int) ([]models.CourseSummary, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))

	var courses []models.Course
	if err := c.getJSON(ctx, "list_courses", "courses", query, &courses); err != nil {
		return nil, err
	}

	out := make([]models.CourseSummary, len(courses))
	for i := range courses {
		out[i] = courses[i].Summary()
	}
	return out, nil
}

// CreateCourse creates a course named name under accountID, enrolls the
// token user, and publishes it. The created course is returned both
// reduced and verbatim.
func (c *Client) CreateCourse(ctx context.Context, accountID int64, name string) (models.CourseSummary, json.RawMessage, error) {
	query := url.Values{}
	query.Set("course[name]", name)
	query.Set("course[default_view]", DefaultCourseView)
	query.Set("enroll_me", "true")
	query.Set("offer", "true")

	path := fmt.Sprintf("accounts/%d/courses", accountID)
	body, err := c.do(ctx, "create_course", http.MethodPost, c.endpoint(path, query), nil)
	if err != nil {
		return models.CourseSummary{}, nil, err
	}

	var course models.Course
	if err := decode("create_course", body, &course); err != nil {
		return models.CourseSummary{}, nil, err
	}
	return course.Summary(), json.RawMessage(body), nil
}

// DeleteCourse permanently deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, courseID int64) (models.DeleteResult, error) {
	query := url.Values{}
	query.Set("event", "delete")

	path := fmt.Sprintf("courses/%d", courseID)
	body, err := c.do(ctx, "delete_course", http.MethodDelete, c.endpoint(path, query), nil)
	if err != nil {
		return models.DeleteResult{}, err
	}

	var result models.DeleteResult
	if err := decode("delete_course", body, &result); err != nil {
		return models.DeleteResult{}, err
	}
	result.CourseID = courseID
	return result, nil
}

// DeleteAllCourses lists up to perPage courses and deletes all of them
// concurrently. Results follow the listing order. The first failure
// cancels the remaining deletions and is returned.
func (c *Client) DeleteAllCourses(ctx context.Context, perPage int) ([]models.DeleteResult, error) {
	return DeleteAll(ctx, c, perPage)
}

// DeleteAll implements DeleteAllCourses on top of any API, so fakes share
// the fan-out.
func DeleteAll(ctx context.Context, api API, perPage int) ([]models.DeleteResult, error) {
	courses, err := api.ListCourses(ctx, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	results := make([]models.DeleteResult, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	for i, course := range courses {
		g.Go(func() error {
			res, err := api.DeleteCourse(gctx, course.ID)
			if err != nil {
				return fmt.Errorf("failed to delete course %d: %w", course.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Course returns /courses/:id verbatim.
func (c *Client) Course(ctx context.Context, courseID int64) (json.RawMessage, error) {
	body, err := c.do(ctx, "course", http.MethodGet, c.endpoint(fmt.Sprintf("courses/%d", courseID), nil), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
