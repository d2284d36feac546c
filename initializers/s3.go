package initializers

import (
	"context"
	"hr-dashboard-backend/config"
	filestorage "hr-dashboard-backend/lib/file-storage"
	s3client "hr-dashboard-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	defer func() {
		filestorage.NewHandler(s3client.Client, config.Conf.S3.BucketName)
	}()
	if config.Conf.S3.Endpoint == "" {
		return
	}
	minioClient, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения и наличия бакета
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, резюме будут храниться в памяти")
		return
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}
