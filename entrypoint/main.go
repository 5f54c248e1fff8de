package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"mangatan.com/yomitan/api"
	"mangatan.com/yomitan/deinflect"
	"mangatan.com/yomitan/logger"
	"mangatan.com/yomitan/lookup"
	"mangatan.com/yomitan/s3client"
	"mangatan.com/yomitan/store"
	"mangatan.com/yomitan/tasks"
	"mangatan.com/yomitan/types"
	"mangatan.com/yomitan/worker"
)

type Config struct {
	ProfilePath   string `envconfig:"YMT_PROFILE_PATH" required:"true"`
	StorePath     string `envconfig:"YMT_STORE_PATH" required:"true"`
	StoreS3Key    string `envconfig:"YMT_STORE_S3_KEY" default:""`
	RestAPIActive bool   `envconfig:"YMT_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"YMT_REST_API_PORT" default:"10000"`
}

const storeOpenMaxRetries = 5

func main() {
	logger.SetupLogging()
	ymtLogger := logger.NewLogger("Main")
	fatalErrLogger := ymtLogger.Fatal().Caller()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	deinflector, err := deinflect.New()
	if err != nil {
		fatalErrLogger.Err(err).Msg("Failed to compile deinflection rules")
		os.Exit(1)
	}

	if err := fetchBundleIfMissing(&config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to fetch dictionary bundle")
		os.Exit(1)
	}

	var termStore *store.TermStore
	for retry := 0; ; retry++ {
		termStore, err = store.Open(config.StorePath)
		if err == nil {
			break
		}
		if retry >= storeOpenMaxRetries {
			fatalErrLogger.Err(err).Msg("Could not open term store after 5 retries, exiting")
			os.Exit(1)
		}
		ymtLogger.Err(err).Msg("Failed to open term store. Retrying in 5 sec")
		time.Sleep(5 * time.Second)
	}
	defer termStore.Close()

	registry := store.NewRegistry()
	profiles, err := types.LoadProfiles(config.ProfilePath)
	if err != nil {
		fatalErrLogger.Err(err).Msg("Failed to load profiles")
		os.Exit(1)
	}
	ymtLogger.Info().Msgf("Loaded %d profiles", len(profiles))
	for i := range profiles {
		registry.SeedFromProfile(&profiles[i])
	}

	service := lookup.NewService(deinflector)
	search := func(ctx context.Context, request tasks.LookupRequest) ([]types.RecordEntry, error) {
		return service.Search(
			ctx,
			termStore,
			registry.Snapshot(),
			request.Text,
			request.CursorOffset,
			deinflect.Language(request.Language),
		)
	}

	if config.RestAPIActive {
		go func() {
			ymtLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Search: search,
			}
			http.HandleFunc("/", apiRequest.ProcessLookup)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			ymtLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	ymtLogger.Info().Msg("Start lookup worker")
	for {
		rmqWorker, err := worker.New(search)
		if err != nil {
			ymtLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			ymtLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// fetchBundleIfMissing downloads the dictionary bundle from shared storage
// when no local copy exists. An empty key means the bundle is provisioned out
// of band.
func fetchBundleIfMissing(config *Config) error {
	if config.StoreS3Key == "" {
		return nil
	}
	if _, err := os.Stat(config.StorePath); err == nil {
		return nil
	}
	client, err := s3client.New()
	if err != nil {
		return err
	}
	data, err := client.Download(config.StoreS3Key)
	if err != nil {
		return err
	}
	return os.WriteFile(config.StorePath, data, 0o644)
}
