package extract

// Package extract drives one extraction job from submission to a terminal
// status: it creates the job on the remote service, polls its status on a
// fixed interval, supports best-effort cancellation, and records completed
// jobs in the history. Progress is propagated to the UI through a callback.
