package config

import (
	"apisport/internal/minioWrapper"
)

// auth fails if a region is set in minioclient...
type MinioConfig struct {
	Address   string
	Port      int
	Ssl       bool
	Accesskey string
	Secretkey string
	Bucket    string
	Region    string
}

// Enabled reports whether an upload destination was configured
func (mcfg MinioConfig) Enabled() bool {
	return mcfg.Bucket != ""
}

func (mcfg MinioConfig) NewClient() (minioWrapper.MinioClientWrapper, error) {
	return minioWrapper.NewMinioConnection(mcfg.Port, mcfg.Address, mcfg.Secretkey, mcfg.Accesskey, mcfg.Region, mcfg.Ssl, mcfg.Bucket)
}
