// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package sync mirrors tracked Canvas folders into local directories.

A folder map pairs a folder page URL with a local directory:

	https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures -> ~/school/cs2040s

Updates walks the course's folders, keeps the tracked folder and everything
under it, lists their files (FileConcurrency listings in flight), and reports
every file whose normalized name is missing locally. Run does that for all
folder maps (FolderConcurrency at a time), prints a summary grouped by course
name, and downloads when asked:

	CS2040S Data Structures and Algorithms
	  + Week 1/intro.pdf
	  + Week 2/sorting.pdf
	! Fetch only. Nothing downloaded.

Existing files are never overwritten; nothing is deleted locally.
*/
package sync
