// Package events is an in-memory broker for spec lifecycle events. The
// store publishes created/updated/deleted events after successful writes;
// reconcilers and tooling subscribe. Publish never blocks on a slow
// subscriber.
package events
