package acf

var (
	GetLastSuccessfulBackendFactory = getLastSuccessfulBackendFactory
	SetLastSuccessfulBackendFactory = setLastSuccessfulBackendFactory
)
