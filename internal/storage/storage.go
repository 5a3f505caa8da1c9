package storage

import (
	"fmt"
	"mime/multipart"

	"organising-events-app/config"
)

// FileStorage 是图片上传后端的统一接口，返回可公开访问的URL
type FileStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// NewFromConfig 按配置选择存储后端
func NewFromConfig() (FileStorage, error) {
	switch config.AppConfig.StorageBackend {
	case "local":
		return NewLocalStorage(config.AppConfig.LocalStoragePath)
	case "s3":
		return NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	case "gcs":
		return NewGCSClient(config.AppConfig.GCSProjectID, config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", config.AppConfig.StorageBackend)
	}
}
