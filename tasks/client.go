package tasks

import (
	"mangatan.com/yomitan/redis"
)

type Client struct {
	Lookups LookupTasks
	Jobs    JobTasks
}

// NewClient is the preferred way of working with task documents.
func NewClient() (Client, error) {
	lookupRedisClient, err := redis.NewClient(LookupsDB)
	if err != nil {
		return Client{}, err
	}
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Lookups: LookupTasks{client: lookupRedisClient},
		Jobs:    JobTasks{client: jobsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Lookups.client.Close()
	_ = client.Jobs.client.Close()
}
