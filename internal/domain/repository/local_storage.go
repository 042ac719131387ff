package repository

// LocalStorage is the device-local persistent key-value contract backing
// the offline ticket cache. GetItem returns ("", nil) when the key is
// absent, matching getItem → null semantics.
type LocalStorage interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	HasItem(key string) (bool, error)
}

// SpaceChecker answers the free-space query used as a precondition gate
// before a download is permitted.
type SpaceChecker interface {
	FreeSpaceMB() (int64, error)
}
