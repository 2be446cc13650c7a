/*
 * Copyright 2026 The CMAP SDK Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package export

import (
	"context"
	"errors"
	"io"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

// ArrowSink writes an Arrow IPC stream holding one record batch.
type ArrowSink struct {
	W io.Writer
	// Mem allocates the record. Optional.
	Mem memory.Allocator
}

func (s *ArrowSink) Export(_ context.Context, rs *cmap.ResultSet) (err error) {
	batch, err := rs.ToArrowBatch(s.Mem)
	if err != nil {
		return err
	}
	defer batch.Release()

	writer := ipc.NewWriter(s.W, ipc.WithSchema(batch.Schema()), ipc.WithAllocator(allocator(s.Mem)))
	defer func() {
		err = errors.Join(err, writer.Close())
	}()
	return writer.Write(batch)
}

func allocator(mem memory.Allocator) memory.Allocator {
	if mem == nil {
		return memory.DefaultAllocator
	}
	return mem
}
