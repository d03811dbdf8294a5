package shopify

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/pkg/timeutils"
)

// One JSONL line can carry a whole edges page; 4 MiB leaves headroom.
// Longer lines are skipped the same way malformed ones are, without
// buffering them.
const maxLineSize = 4 * 1024 * 1024

const bulkQueryTemplate = `mutation {
  bulkOperationRunQuery(
    query: """
    {
      orders(query: "created_at:>='%s' AND created_at:<='%s'") {
        edges {
          node {
            id
            name
            createdAt
            landingSite
            referringSite
            totalPrice
            customAttributes {
              key
              value
            }
          }
        }
      }
    }
    """
  ) {
    bulkOperation {
      id
      status
    }
    userErrors {
      field
      message
    }
  }
}`

const currentBulkOperationQuery = `{
  currentBulkOperation {
    id
    status
    errorCode
    url
    objectCount
  }
}`

// StartBulkExport submits an asynchronous bulk query for the range and
// returns the job's initial handle without waiting. Platform validation
// errors are surfaced verbatim.
func (c *Client) StartBulkExport(ctx context.Context, dr timeutils.DateRange) (shopifyprotocol.BulkOperationHandle, error) {
	query := fmt.Sprintf(bulkQueryTemplate, dr.StartRFC3339(), dr.EndRFC3339())

	data := shopifyprotocol.BulkRunQueryData{}
	if err := c.graphql(ctx, query, &data); err != nil {
		return shopifyprotocol.BulkOperationHandle{}, err
	}
	if len(data.BulkOperationRunQuery.UserErrors) > 0 {
		messages := make([]string, len(data.BulkOperationRunQuery.UserErrors))
		for i, userError := range data.BulkOperationRunQuery.UserErrors {
			messages[i] = userError.Message
		}
		return shopifyprotocol.BulkOperationHandle{}, &JobError{Messages: messages}
	}
	if data.BulkOperationRunQuery.BulkOperation == nil {
		return shopifyprotocol.BulkOperationHandle{}, &JobError{Messages: []string{"no bulk operation in response"}}
	}
	c.logger.InfoCtx(ctx, "bulk export started",
		zap.String("id", data.BulkOperationRunQuery.BulkOperation.ID),
		zap.String("status", string(data.BulkOperationRunQuery.BulkOperation.Status)),
	)
	return *data.BulkOperationRunQuery.BulkOperation, nil
}

// BulkStatus reports the platform's current bulk operation. The platform
// exposes a single current-operation pointer per store, so this is not
// tied to any job this process started: whoever starts a new job moves
// the pointer for everyone.
func (c *Client) BulkStatus(ctx context.Context) (shopifyprotocol.BulkOperationHandle, error) {
	data := shopifyprotocol.CurrentBulkOperationData{}
	if err := c.graphql(ctx, currentBulkOperationQuery, &data); err != nil {
		return shopifyprotocol.BulkOperationHandle{}, err
	}
	if data.CurrentBulkOperation == nil {
		return shopifyprotocol.BulkOperationHandle{Status: shopifyprotocol.BulkStatusNone}, nil
	}
	return *data.CurrentBulkOperation, nil
}

// DownloadBulkResult streams the completed job's gzip'd JSONL file from
// url, normalizing each line into rows passed to fn. Malformed lines are
// skipped. A positive previewLimit stops after that many rows without
// consuming the rest of the download. An error from fn aborts the stream;
// the network body is closed on every exit path.
func (c *Client) DownloadBulkResult(ctx context.Context, url string, previewLimit int, fn func(clientprotocol.OrderRow) error) error {
	resp, err := resty.New().R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("bulk file request failed: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != 200 {
		return &RequestError{StatusCode: resp.StatusCode(), Body: "bulk file download failed"}
	}

	gz, err := gzip.NewReader(body)
	if err != nil {
		return fmt.Errorf("error opening gzip stream: %w", err)
	}
	defer gz.Close()

	reader := bufio.NewReaderSize(gz, 64*1024)

	emitted := 0
	skipped := 0
	for {
		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading bulk file: %w", err)
		}
		if tooLong {
			skipped++
			continue
		}
		if len(line) == 0 {
			continue
		}
		rows, ok := c.rowsFromLine(line)
		if !ok {
			skipped++
			continue
		}
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
			emitted++
			if previewLimit > 0 && emitted >= previewLimit {
				return nil
			}
		}
	}
	if skipped > 0 {
		c.logger.InfoCtx(ctx, "skipped unusable bulk lines", zap.Int("skipped", skipped))
	}
	return nil
}

// readLine assembles one line, draining the rest of any line that exceeds
// maxLineSize and reporting it as tooLong instead of buffering it.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return line, tooLong, err
		}
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineSize {
				line = nil
				tooLong = true
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// rowsFromLine accepts the three line shapes a bulk file may contain: a
// wrapped collection of order edges, a single wrapped node, or a bare
// order object.
func (c *Client) rowsFromLine(line []byte) ([]clientprotocol.OrderRow, bool) {
	parsed := map[string]any{}
	if err := json.Unmarshal(line, &parsed); err != nil {
		return nil, false
	}

	wrapper := parsed
	if data, ok := parsed["data"].(map[string]any); ok {
		wrapper = data
	}
	if orders, ok := wrapper["orders"].(map[string]any); ok {
		edges, _ := orders["edges"].([]any)
		rows := make([]clientprotocol.OrderRow, 0, len(edges))
		for _, edge := range edges {
			edgeMap, ok := edge.(map[string]any)
			if !ok {
				continue
			}
			if node, ok := edgeMap["node"].(map[string]any); ok {
				rows = append(rows, c.normalizer.Normalize(node))
			}
		}
		return rows, true
	}
	if node, ok := parsed["node"].(map[string]any); ok {
		return []clientprotocol.OrderRow{c.normalizer.Normalize(node)}, true
	}
	if _, ok := parsed["id"]; ok {
		return []clientprotocol.OrderRow{c.normalizer.Normalize(parsed)}, true
	}
	return nil, false
}

func (c *Client) graphql(ctx context.Context, query string, out any) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(shopifyprotocol.GraphQLRequest{Query: query}).
		Post(c.baseURL() + "/graphql.json")
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return &RequestError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	envelope := shopifyprotocol.GraphQLResponse{}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("error unmarshalling graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, graphqlError := range envelope.Errors {
			messages[i] = graphqlError.Message
		}
		return &JobError{Messages: messages}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("error unmarshalling graphql data: %w", err)
	}
	return nil
}
