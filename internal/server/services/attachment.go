package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignValidity = 15 * time.Minute

// AttachmentUpload is the response to an upload request: where to PUT the
// payload and the metadata record the server created for it.
type AttachmentUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileName  string `json:"fileName"`
}

// AttachmentService manages binary payloads attached to notes. Payloads live
// in S3-compatible object storage and move via presigned URLs; the server
// never proxies file bytes.
type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AttachmentService {
	return &AttachmentService{db: db, repomanager: m, config: cfg}
}

// randomStorageKey spreads objects by date so buckets stay listable.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("notes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *AttachmentService) presignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}
	bucket := s.config.S3Bucket
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *AttachmentService) presignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}
	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ownedNote verifies the caller owns the note; foreign notes surface as
// ErrorNotFound exactly like missing ones.
func (s *AttachmentService) ownedNote(ctx context.Context, userID, noteID string) error {
	_, err := s.repomanager.Notes(s.db).Get(ctx, noteID, userID)
	return err
}

// CreateAttachment records pending metadata and hands back a presigned PUT
// URL. The client uploads directly to object storage, then calls
// MarkUploaded.
func (s *AttachmentService) CreateAttachment(ctx context.Context, userID, noteID, fileName string, size int64) (*AttachmentUpload, error) {
	if fileName == "" {
		return nil, common.ErrorInvalidInput
	}
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		NoteID:       noteID,
		UserID:       userID,
		FileName:     fileName,
		Size:         size,
		StorageKey:   randomStorageKey(),
		UploadStatus: models.UploadPending,
	}
	if err := s.repomanager.Attachments(s.db).Create(ctx, attachment); err != nil {
		return nil, err
	}

	url, err := s.presignedPutURL(ctx, attachment.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %v", err)
	}
	return &AttachmentUpload{UploadURL: url, FileName: fileName}, nil
}

// MarkUploaded flips the attachment to completed after the client confirms
// the PUT succeeded.
func (s *AttachmentService) MarkUploaded(ctx context.Context, userID, noteID, fileName string) error {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}
	return s.repomanager.Attachments(s.db).MarkUploaded(ctx, noteID, fileName)
}

// AttachmentURL returns a presigned GET URL for a completed attachment.
func (s *AttachmentService) AttachmentURL(ctx context.Context, userID, noteID, fileName string) (string, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return "", err
	}
	attachment, err := s.repomanager.Attachments(s.db).Get(ctx, noteID, fileName)
	if err != nil {
		return "", err
	}
	url, err := s.presignedGetURL(ctx, attachment.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %v", err)
	}
	return url, nil
}

// ListAttachments returns attachment metadata for an owned note.
func (s *AttachmentService) ListAttachments(ctx context.Context, userID, noteID string) ([]*models.Attachment, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.repomanager.Attachments(s.db).ListByNote(ctx, noteID)
}

// DeleteAttachment removes the metadata record. The object itself is left to
// bucket lifecycle rules.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, userID, noteID, fileName string) error {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}
	return s.repomanager.Attachments(s.db).Delete(ctx, noteID, fileName)
}
