package swecha

import (
	"context"
	"errors"
	"fmt"
)

// ErrPartialUpload marks an upload whose chunk landed but whose finalize call
// never reached the archive: the chunk is orphaned upstream and the caller
// must resubmit with a fresh upload_uuid.
var ErrPartialUpload = errors.New("upload partially submitted: chunk accepted but finalize failed")

// RelayPhase names which of the two upstream calls produced a RelayResult.
type RelayPhase string

const (
	PhaseChunk    RelayPhase = "chunk"
	PhaseFinalize RelayPhase = "finalize"
)

// RelayResult reports the outcome of a two-phase upload. Response always
// holds the upstream answer of the reported phase, to be forwarded verbatim.
// PartiallySubmitted is true when the chunk was accepted but the finalize
// call was rejected, leaving an orphaned chunk upstream.
type RelayResult struct {
	Phase              RelayPhase
	Response           *UpstreamResponse
	PartiallySubmitted bool
}

// RelayUpload runs the chunk call and, only if it succeeded, the finalize
// call. Nothing is retried and there is no compensation: a finalize failure
// is reported as partially submitted rather than rolled back.
func (c *Client) RelayUpload(ctx context.Context, authorization string, chunk ChunkUpload, fin FinalizeRequest) (*RelayResult, error) {
	chunkResp, err := c.UploadChunk(ctx, authorization, chunk)
	if err != nil {
		return nil, fmt.Errorf("chunk upload: %w", err)
	}
	if !chunkResp.OK() {
		c.logger.Printf("chunk upload rejected upstream: uuid=%s status=%d", chunk.UploadUUID, chunkResp.StatusCode)
		return &RelayResult{Phase: PhaseChunk, Response: chunkResp}, nil
	}

	finResp, err := c.FinalizeUpload(ctx, authorization, fin)
	if err != nil {
		// The archive is now holding an unfinalized chunk.
		return nil, fmt.Errorf("%w: %v", ErrPartialUpload, err)
	}
	if !finResp.OK() {
		c.logger.Printf("finalize rejected upstream, chunk orphaned: uuid=%s status=%d", fin.UploadUUID, finResp.StatusCode)
		return &RelayResult{Phase: PhaseFinalize, Response: finResp, PartiallySubmitted: true}, nil
	}
	return &RelayResult{Phase: PhaseFinalize, Response: finResp}, nil
}
