package memory

import "sync"

// Per-session serialization without a global lock: requests for the same
// session take the same shard mutex, requests for different sessions almost
// always proceed in parallel.
const lockShards = 64

// KeyedLock serializes work per key using a fixed set of shard mutexes.
type KeyedLock struct {
	shards [lockShards]sync.Mutex
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{}
}

// Lock acquires the shard mutex for the key.
func (k *KeyedLock) Lock(key string) {
	k.shards[shardFor(key)].Lock()
}

// Unlock releases the shard mutex for the key.
func (k *KeyedLock) Unlock(key string) {
	k.shards[shardFor(key)].Unlock()
}

func shardFor(key string) uint32 {
	// FNV-1a
	var h uint32 = 2166136261
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= 16777619
	}
	return h % lockShards
}
