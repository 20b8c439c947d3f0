package storage

import "time"

type MountInfo struct {
	Path      string
	Backend   string
	ReadOnly  bool
	MountedAt time.Time
}

type MountOption func(*MountInfo)

func WithReadOnly() MountOption {
	return func(info *MountInfo) {
		info.ReadOnly = true
	}
}
