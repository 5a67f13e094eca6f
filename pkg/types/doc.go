// Package types defines the Task and User entities, the TaskSpec filter
// predicate, the TaskStore and UserStore contracts, and the standard error
// values for the taskdesk system.
package types
