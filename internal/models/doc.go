// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package models defines the data structures shared by the Canvas client, the
admin API, the browser console and the sync engine.

Canvas Models:

  - Course, CourseSummary: courses as returned by /courses and the {id, name}
    shape the console and harness work with
  - Folder, File: course folders and files (https://canvas.instructure.com/doc/api/files.html)
  - User, Profile: /users/self and /users/self/profile
  - Account: /accounts
  - DeleteResult: the {delete: bool} payload of DELETE /courses/:id?event=delete

Request Models:

  - CreateCourseRequest: body of POST /api/v1/courses, validated with
    go-playground/validator tags

Canvas responses carry many more fields than are modeled here. Anything that
has to be shown verbatim is passed around as json.RawMessage instead of being
decoded into these types.
*/
package models
