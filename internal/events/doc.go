// Package events provides types and interfaces for decoupled event publishing.
//
// Services emit events without knowing which handlers will process them.
// The review service publishes a ReviewRecordedEvent after each successful
// submission; handlers can react to it (analytics, notifications) without
// coupling to the review code.
package events
