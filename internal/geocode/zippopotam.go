package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/coworkhub/internal/security"
)

// ZippopotamResolver はZippopotam.us APIを使って郵便番号を座標へ解決する。
// HTTPクライアントはSSRFガード付きのものを使用する。
type ZippopotamResolver struct {
	client  *http.Client
	guard   security.SSRFGuardService
	baseURL string
	country string
	maxSize int64
}

// NewZippopotamResolver は新しいZippopotamResolverを作成する。
// countryはISO 3166-1 alpha-2の国コード(例: "us")を指定する。
func NewZippopotamResolver(guard security.SSRFGuardService, country string, timeout time.Duration, maxSize int64) *ZippopotamResolver {
	return &ZippopotamResolver{
		client:  guard.NewSafeClient(timeout, maxSize),
		guard:   guard,
		baseURL: "https://api.zippopotam.us",
		country: country,
		maxSize: maxSize,
	}
}

// zippopotamResponse はZippopotam.us APIのレスポンス形式。
type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Resolve は郵便番号をZippopotam.us APIで座標へ解決する。
// 該当する地点が見つからない場合はエラーを返す。
func (r *ZippopotamResolver) Resolve(ctx context.Context, zipcode string) (Coordinates, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", r.baseURL, r.country, zipcode)

	if err := r.guard.ValidateURL(reqURL); err != nil {
		return Coordinates{}, fmt.Errorf("failed to validate geocode URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to fetch geocode response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize))
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to read geocode response: %w", err)
	}

	var parsed zippopotamResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse geocode response: %w", err)
	}

	if len(parsed.Places) == 0 {
		return Coordinates{}, fmt.Errorf("geocode API returned no places for zipcode %s", zipcode)
	}

	lat, err := strconv.ParseFloat(parsed.Places[0].Latitude, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(parsed.Places[0].Longitude, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return Coordinates{Lat: lat, Lng: lng}, nil
}

var _ Resolver = (*ZippopotamResolver)(nil)
