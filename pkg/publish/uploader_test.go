package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/config"
)

// fakeS3 records PutObject calls; unimplemented methods panic via the nil interface
type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	if _, err := NewUploader(&fakeS3{}, "", "renders/", nil); !errors.Is(err, ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket, got %v", err)
	}
	if _, err := NewS3Uploader(config.S3Config{}, nil); !errors.Is(err, ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket from empty config, got %v", err)
	}
}

func TestUploader_Key(t *testing.T) {
	tests := []struct {
		prefix   string
		name     string
		expected string
	}{
		{"renders/", "out.png", "renders/out.png"},
		{"renders", "out.png", "renders/out.png"},
		{"", "out.png", "out.png"},
		{"renders/", "/tmp/work/out.ppm", "renders/out.ppm"},
	}

	for _, tt := range tests {
		u, err := NewUploader(&fakeS3{}, "bucket", tt.prefix, nil)
		if err != nil {
			t.Fatalf("NewUploader failed: %v", err)
		}
		if got := u.Key(tt.name); got != tt.expected {
			t.Errorf("Key(%q) with prefix %q = %q, want %q", tt.name, tt.prefix, got, tt.expected)
		}
	}
}

func TestUploader_Upload(t *testing.T) {
	fake := &fakeS3{}
	u, err := NewUploader(fake, "bucket", "renders/", nil)
	if err != nil {
		t.Fatalf("NewUploader failed: %v", err)
	}

	data := []byte("P3\n1 1\n255\n0 0 0\n")
	key, err := u.Upload(context.Background(), "out.ppm", data, "image/x-portable-pixmap")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if key != "renders/out.ppm" {
		t.Errorf("Expected key renders/out.ppm, got %q", key)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("Expected 1 PutObject call, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.StringValue(in.Bucket) != "bucket" {
		t.Errorf("Expected bucket 'bucket', got %q", aws.StringValue(in.Bucket))
	}
	if aws.StringValue(in.ContentType) != "image/x-portable-pixmap" {
		t.Errorf("Unexpected content type %q", aws.StringValue(in.ContentType))
	}
	if aws.Int64Value(in.ContentLength) != int64(len(data)) {
		t.Errorf("Expected content length %d, got %d", len(data), aws.Int64Value(in.ContentLength))
	}
	if string(fake.bodies[0]) != string(data) {
		t.Errorf("Uploaded body mismatch: %q", fake.bodies[0])
	}
}

func TestUploader_UploadError(t *testing.T) {
	errDenied := errors.New("access denied")
	u, err := NewUploader(&fakeS3{err: errDenied}, "bucket", "", nil)
	if err != nil {
		t.Fatalf("NewUploader failed: %v", err)
	}

	_, err = u.Upload(context.Background(), "out.png", []byte{1, 2, 3}, "image/png")
	if !errors.Is(err, errDenied) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}
