package s3client

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"mangatan.com/yomitan/logger"
)

// Client fetches dictionary bundles from the shared storage bucket. Credential
// setup tries the EC2 instance role first and falls back to environment
// credentials, so the same binary runs in-cluster and on a laptop.
type Client struct {
	mu         sync.Mutex
	sess       *session.Session
	bucketName string
	region     string
	env        EnvironmentConfig
}

type EnvironmentConfig struct {
	BucketName  string `envconfig:"YMT_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	Env         string `envconfig:"YMT_ENV" required:"true"`
	Region      string `envconfig:"YMT_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"YMT_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"YMT_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"YMT_COMN_AWS_ACCESS_KEY" default:""`
}

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

func New() (*Client, error) {
	var env EnvironmentConfig
	if err := envconfig.Process("", &env); err != nil {
		clientLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := Client{
		bucketName: env.BucketName,
		region:     env.Region,
		env:        env,
	}
	if err := client.acquireNewSession(); err != nil {
		return nil, err
	}
	return &client, nil
}

func (client *Client) Download(key string) ([]byte, error) {
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	ymtLogger := clientLogger.With().
		Str("key", key).
		Str("bucket", client.bucketName).Logger()
	sdkLog := sdkLogger.With().
		Str("key", key).
		Str("bucket", client.bucketName).Logger()

	downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))
	buf := aws.NewWriteAtBuffer([]byte{})

	ymtLogger.Debug().Msg("Downloading file")
	size, err := downloader.Download(buf, &s3.GetObjectInput{
		Bucket: &client.bucketName,
		Key:    &key,
	})
	if err != nil {
		ymtLogger.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	ymtLogger.Debug().Msgf("Downloaded %v bytes", size)
	return buf.Bytes(), nil
}

func (client *Client) Upload(data []byte, key string) error {
	sess, err := client.session()
	if err != nil {
		return err
	}
	ymtLogger := clientLogger.With().
		Str("key", key).
		Str("bucket", client.bucketName).Logger()
	sdkLog := sdkLogger.With().
		Str("key", key).
		Str("bucket", client.bucketName).Logger()

	uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))
	ymtLogger.Debug().Msg("Uploading the file")
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: &client.bucketName,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	return err
}

func (client *Client) session() (*session.Session, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.sess != nil {
		return client.sess, nil
	}
	if err := client.acquireNewSessionLocked(); err != nil {
		return nil, err
	}
	return client.sess, nil
}

// Refresh drops the cached session; the next call rebuilds it. Callers invoke
// this after credential errors.
func (client *Client) Refresh() {
	client.mu.Lock()
	client.sess = nil
	client.mu.Unlock()
}

func (client *Client) acquireNewSession() error {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.acquireNewSessionLocked()
}

func (client *Client) acquireNewSessionLocked() error {
	sess, err := session.NewSession(client.createEC2Config())
	if err == nil {
		if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err == nil {
			client.sess = sess
			clientLogger.Info().Msg("S3 session successfully initialized using EC2")
			return nil
		}
	}
	clientLogger.Info().Msg("Could not initialize S3 session using EC2, trying env credentials")
	sess, err = session.NewSession(client.createEnvConfig())
	if err != nil {
		client.sess = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return err
	}
	if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		client.sess = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return errors.New("could not initialize S3 session")
	}
	client.sess = sess
	clientLogger.Info().Msg("S3 session successfully initialized using env credentials")
	return nil
}

func (client *Client) createEC2Config() *aws.Config {
	return &aws.Config{
		Region:     aws.String(client.region),
		MaxRetries: aws.Int(4),
		LogLevel:   aws.LogLevel(aws.LogDebug),
	}
}

func (client *Client) createEnvConfig() *aws.Config {
	creds := credentials.NewStaticCredentials(
		client.env.AccessKeyID,
		client.env.AccessKey,
		"")
	cfg := aws.NewConfig().
		WithRegion(client.region).
		WithMaxRetries(4).
		WithCredentials(creds).
		WithLogLevel(aws.LogDebug)

	inDevEnv := client.env.Env == "dev"
	if inDevEnv && len(client.env.AwsEndpoint) > 0 {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).
			WithS3ForcePathStyle(true)
	}
	return cfg
}

type s3Logger struct {
	ymtLogger zerolog.Logger
}

func getLogger(ymtLogger zerolog.Logger) *s3Logger {
	return &s3Logger{ymtLogger}
}

func (logger *s3Logger) Log(v ...interface{}) {
	logger.ymtLogger.Debug().Msg(fmt.Sprint(v...))
}
