package consts

import "time"

// UpdateStatusType is the outcome of one DDNS reconciliation run.
type UpdateStatusType string

const (
	UpdatedNothing UpdateStatusType = "UnChanged"
	UpdatedFailed  UpdateStatusType = "Failure"
	UpdatedSuccess UpdateStatusType = "Success"
)

// ACME DNS-01 challenge conventions, per the certbot hook contract.
const (
	AcmeChallengeLabel = "_acme-challenge"
	// AcmeTTL is the challenge record TTL recommended by the certbot wiki.
	AcmeTTL = "120"
	// DefaultPropagationDelay is how long the acme command waits after
	// publishing a challenge so DNS caches can pick it up before the CA
	// queries it.
	DefaultPropagationDelay = 120 * time.Second
)

// DefaultDaemonDelay is the interval between DDNS runs in daemon mode.
const DefaultDaemonDelay = 300 * time.Second

const (
	StatusReady   int32 = 0  // Timer is ready for running.
	StatusRunning int32 = 1  // Timer is already running.
	StatusStopped int32 = 2  // Timer is stopped.
	StatusClosed  int32 = -1 // Timer is closed and waiting to be deleted.
)
