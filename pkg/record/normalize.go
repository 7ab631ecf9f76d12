package record

import (
	"fmt"
	"strings"
)

// BatchResult is one per-record outcome inside a batch response.
type BatchResult struct {
	Success bool
	Message string
	Data    Record
}

// BatchResponse is the provider-neutral form of a create/update/delete reply.
type BatchResponse struct {
	Success bool
	Message string
	Results []BatchResult
}

// NormalizeBatch turns a batch reply into the succeeded records or one
// taxonomy error:
//   - success=false overall is ErrRequestFailed;
//   - any failed result is a *PartialFailureError, even though the call
//     nominally succeeded;
//   - a single-record batch whose only result failed with a not-found
//     message is ErrNotFound.
func NormalizeBatch(op string, resp BatchResponse) ([]Record, error) {
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "provider reported failure"
		}
		if IsNotFoundMessage(msg) {
			return nil, fmt.Errorf("%w: %s: %s", ErrNotFound, op, msg)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrRequestFailed, op, msg)
	}

	var ok []Record
	var failed []BatchResult
	for _, r := range resp.Results {
		if r.Success {
			ok = append(ok, r.Data)
		} else {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return ok, nil
	}
	reason := failed[0].Message
	if reason == "" {
		reason = "no reason given"
	}
	if len(resp.Results) == 1 && IsNotFoundMessage(reason) {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotFound, op, reason)
	}
	return nil, &PartialFailureError{
		Op:     op,
		Failed: len(failed),
		Total:  len(resp.Results),
		Reason: reason,
	}
}

// NormalizeWrite is NormalizeBatch for create and update: a reply that
// carries no successful record is ErrRequestFailed.
func NormalizeWrite(op string, resp BatchResponse) (Record, error) {
	recs, err := NormalizeBatch(op, resp)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 || recs[0] == nil {
		return nil, fmt.Errorf("%w: %s: no record returned", ErrRequestFailed, op)
	}
	return recs[0], nil
}

// NormalizeDelete is NormalizeBatch for delete. Results carry no data, so
// success means every listed id was removed.
func NormalizeDelete(op string, resp BatchResponse) (bool, error) {
	if _, err := NormalizeBatch(op, resp); err != nil {
		return false, err
	}
	return true, nil
}

// IsNotFoundMessage recognises the provider's wording for a missing record.
func IsNotFoundMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(m, "does not exist")
}
