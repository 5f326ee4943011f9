// Package events provides the in-process learning-event bus.
//
// External collaborators inside the same process (the course-completion
// tracker, the assessment grader) emit LearningEvents without importing the
// progress service; the service registers a handler and converts events into
// progression updates. Dispatch is synchronous: an event is fully processed,
// or has failed, by the time EmitEvent returns. There is no background
// scheduler and no redelivery; callers own retry and at-most-once emission.
package events
