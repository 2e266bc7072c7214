// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// RepositoryManager wraps every git invocation the cleanup workflow needs
// (working tree detection, branch enumeration, stash management, checkout,
// forced branch deletion, fetch, and rebase pull) behind typed methods, and
// ParseBranchList turns `git branch` output into plain branch names.
package gitrepo
