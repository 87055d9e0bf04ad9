package repo

import "go.uber.org/zap"

// Repository groups the Redis-backed repositories sharing one client.
type Repository struct {
	Client     *RedisClient
	Workspaces *WorkspaceRepository
}

func NewRepository(log *zap.Logger, client *RedisClient) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("repo")
	return &Repository{
		Client:     client,
		Workspaces: newWorkspaceRepository(log, client),
	}
}
