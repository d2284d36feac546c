package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"hr-dashboard-backend/lib/memdb"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("файл не найден")

// Provider хранилище загруженных резюме
type Provider interface {
	UploadCV(ctx context.Context, fileName string, body []byte) (fileID string, err error)
	GetCV(ctx context.Context, fileID string) ([]byte, error)
}

var Instance Provider

// NewHandler при отсутствии клиента S3 файлы хранятся в памяти
func NewHandler(s3client *minio.Client, bucketName string) {
	if s3client == nil {
		log.Info("S3 не настроен, резюме хранятся в памяти")
		Instance = NewMemoryInstance()
		return
	}
	Instance = NewInstance(s3client, bucketName)
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadCV(ctx context.Context, fileName string, body []byte) (string, error) {
	fileID := objectName(fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, fileID, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{
			ContentType:  contentType(fileName),
			UserMetadata: map[string]string{"file-name": fileName},
		})
	if err != nil {
		log.WithError(err).WithField("file_name", fileName).Error("ошибка загрузки резюме в S3")
		return "", err
	}
	return fileID, nil
}

func (i impl) GetCV(ctx context.Context, fileID string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

type storedFile struct {
	ID   string
	Body []byte
}

func NewMemoryInstance() Provider {
	return &memoryImpl{
		files: memdb.NewTable(func(rec storedFile) string { return rec.ID }, func(rec storedFile) storedFile {
			rec.Body = append([]byte(nil), rec.Body...)
			return rec
		}),
	}
}

type memoryImpl struct {
	files *memdb.Table[storedFile]
}

func (i memoryImpl) UploadCV(_ context.Context, fileName string, body []byte) (string, error) {
	rec := storedFile{ID: objectName(fileName), Body: body}
	i.files.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) GetCV(_ context.Context, fileID string) ([]byte, error) {
	rec, ok := i.files.Get(fileID)
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Body, nil
}

func objectName(fileName string) string {
	return fmt.Sprintf("cv/%s%s", memdb.NewID(), strings.ToLower(path.Ext(fileName)))
}

func contentType(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
