// Package cleanup prunes local branches and refreshes a repository from its
// remotes while preserving uncommitted work.
//
// A run is split in two phases. Planner collects every operator decision and
// produces an immutable Plan; Service.Execute then issues git commands in a
// fixed order driven solely by that Plan. PreconditionChecker guards both
// phases and Journal records the outcome of each step as leveled lines on the
// terminal and in an append-only log inside the git metadata directory.
package cleanup
