package imghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/malchin/market/internal/config"
	inHttp "github.com/malchin/market/internal/http"
	"github.com/malchin/market/internal/log"
	"github.com/malchin/market/internal/otel"
	inOtel "github.com/malchin/market/product/internal/otel"
)

// Client uploads base64 encoded images to an imgbb compatible host and
// returns the public url of the uploaded image.
type Client struct {
	config config.ImageHost
}

func NewClient(config config.ImageHost) Client {
	return Client{config: config}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

func (cl Client) Upload(c context.Context, image string) (string, error) {
	c, span := inOtel.Tracer.Start(c, "ImageHostClient Upload")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ImageHostClient Upload").
		Str(log.KeyProcess, "uploading image").
		Logger()

	logger.Info().Msg("uploading image")
	form := url.Values{}
	form.Set("key", cl.config.ApiKey)
	form.Set("image", image)

	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		cl.config.URL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		err = fmt.Errorf("failed creating upload request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, "application/x-www-form-urlencoded")
	req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, log.RequestIDFromContext(c))

	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed uploading image with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	uploaded := uploadResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		err = fmt.Errorf("failed decoding upload response with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if resp.StatusCode != http.StatusOK || !uploaded.Success {
		err = fmt.Errorf("image host returned status code=%d", resp.StatusCode)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("uploaded image")

	return uploaded.Data.URL, nil
}
