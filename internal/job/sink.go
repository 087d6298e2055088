/*
Copyright © 2021 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package job

import (
	"bytes"
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"gocloud.dev/blob"

	// Register the file:// and mem:// bucket schemes.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// Sink stores job output in a blob bucket.
type Sink struct {
	bucket *blob.Bucket
}

// OpenSink opens the bucket at url, for example "file:///tmp/out"
// or "mem://".
func OpenSink(ctx context.Context, url string) (*Sink, error) {
	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("job: opening output bucket %s: %w", url, err)
	}
	return &Sink{bucket: b}, nil
}

type resultFile struct {
	Result []Result
}

// WriteResults stores results as TOML under key.
func (s *Sink) WriteResults(ctx context.Context, key string, results []Result) error {
	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(resultFile{Result: results}); err != nil {
		return fmt.Errorf("job: encoding results: %w", err)
	}
	return s.Write(ctx, key, b.Bytes())
}

// ReadResults reads results stored by WriteResults.
func (s *Sink) ReadResults(ctx context.Context, key string) ([]Result, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("job: reading %s: %w", key, err)
	}
	var r resultFile
	if _, err := toml.Decode(string(data), &r); err != nil {
		return nil, fmt.Errorf("job: decoding %s: %w", key, err)
	}
	return r.Result, nil
}

// Write stores data under key.
func (s *Sink) Write(ctx context.Context, key string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, key, data, nil); err != nil {
		return fmt.Errorf("job: writing %s: %w", key, err)
	}
	return nil
}

// Close closes the bucket.
func (s *Sink) Close() error { return s.bucket.Close() }
