// Package domain defines the core business entities of the mastery
// progression engine: skills, learning-unit impact declarations, per-learner
// skill progress, and the append-only progress history.
//
// Entities validate themselves and carry no persistence or transport
// concerns. All mutation of SkillProgress happens through the progress
// service; domain types only express the rules that make a state valid.
package domain
