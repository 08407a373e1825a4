// Package storage provides the S3/MinIO client used to archive raw
// supplier feeds for audit.
//
// The client is a thin interface over minio-go so the archiver can be
// tested against the generated mock in storage/mocks. Connection setup
// uses strict transport timeouts; per-operation deadlines come from the
// caller's context.
package storage
