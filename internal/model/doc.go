package model

// Package model defines domain data structures shared by the extractor: the
// extraction request sent to the remote service, job status mirrors, video
// metadata, history records, and the job state enum with explicit transitions.
