package secrets

// Store holds one secret value per key under a fixed service identifier.
// Get and Delete report a missing key with a fault.NotFound error; every
// other backend failure is a fault.Store error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Lister is implemented by backends that can enumerate their keys
type Lister interface {
	List() ([]string, error)
}

// ServiceName is the default service identifier for secret entries
const ServiceName = "twofa-cli"

// IndexService returns the service identifier holding the name index for
// the given secrets service. Keeping the index in its own namespace means
// no user-chosen name can ever address it.
func IndexService(service string) string {
	return service + ".index"
}
