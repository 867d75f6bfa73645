package s3

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/saransh1220/image-depot/internal/modules/filestorage/domain"
)

// S3Config holds configuration for S3/MinIO storage
type S3Config struct {
	BucketName string
	Region     string
	Endpoint   string // e.g. minio:9000; empty means AWS
	AccessKey  string
	SecretKey  string
	Prefix     string // folder inside the bucket acting as the upload directory
	UseSSL     bool
}

// S3Storage implements FileStorage on a single bucket prefix
type S3Storage struct {
	client *s3.Client
	config S3Config
	prefix string
}

// NewS3Storage creates a new S3 storage implementation
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO / LocalStack Configuration
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true // Required for MinIO
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
	})

	return &S3Storage{
		client: client,
		config: cfg,
		prefix: normalizePrefix(cfg.Prefix),
	}, nil
}

// Put uploads r unless an object with the same name already exists
func (s *S3Storage) Put(ctx context.Context, name string, r io.Reader, contentType string) (int64, error) {
	if err := domain.ValidateName(name); err != nil {
		return 0, fmt.Errorf("%w: object name %q", domain.ErrInvalidInput, name)
	}

	body, size, err := sizedBody(r)
	if err != nil {
		return 0, domain.StorageError("read upload", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.BucketName),
		Key:           aws.String(s.key(name)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		if apiErrorCode(err) == "PreconditionFailed" || apiErrorCode(err) == "ConditionalRequestConflict" {
			return 0, domain.ErrExists
		}
		return 0, domain.StorageError("upload to s3", err)
	}

	return size, nil
}

// Open streams an object. The stored Content-Type wins over extension and sniffing.
func (s *S3Storage) Open(ctx context.Context, name string) (io.ReadCloser, *domain.Object, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		switch apiErrorCode(err) {
		case "NoSuchKey", "NotFound":
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, domain.StorageError("get from s3", err)
	}

	obj := &domain.Object{
		Name:        name,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ModTime:     aws.ToTime(out.LastModified),
	}

	var rc io.ReadCloser = out.Body
	if obj.ContentType == "" {
		obj.ContentType = domain.ContentTypeByExtension(name)
	}
	if obj.ContentType == "" {
		br := bufio.NewReaderSize(out.Body, domain.SniffLen)
		head, _ := br.Peek(domain.SniffLen)
		obj.ContentType = http.DetectContentType(head)
		rc = &bufferedBody{Reader: br, Closer: out.Body}
	}

	return rc, obj, nil
}

// List returns the object names directly under the prefix, sorted
func (s *S3Storage) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.config.BucketName),
		Prefix:    aws.String(s.prefix),
		Delimiter: aws.String("/"),
	})

	names := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, domain.StorageError("list s3 objects", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names, nil
}

func (s *S3Storage) key(name string) string {
	return s.prefix + name
}

type bufferedBody struct {
	*bufio.Reader
	io.Closer
}

// sizedBody returns a seekable body and its length. The SDK needs both to
// sign a PutObject over plain HTTP.
func sizedBody(r io.Reader) (io.ReadSeeker, int64, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		cur, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, err
		}
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, err
		}
		if _, err := rs.Seek(cur, io.SeekStart); err != nil {
			return nil, 0, err
		}
		return rs, end - cur, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

func apiErrorCode(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func endpointURL(endpoint string, useSSL bool) string {
	if hasHTTPPrefix(endpoint) {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// hasHTTPPrefix checks if a string has http:// or https:// prefix
func hasHTTPPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
