// Package captions interroge l'API player de YouTube (la même que le client
// mobile) pour lister les pistes de sous-titres d'une vidéo et récupérer leur
// contenu au format json3.
package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickprogramme/studyscribe/internal/fetch"
)

const (
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"

	// Identité du client Android : c'est elle qui donne accès aux pistes
	// de sous-titres sans clé d'API.
	clientName        = "ANDROID"
	clientVersion     = "20.10.38"
	androidSdkVersion = 30

	playerTimeout = 15 * time.Second
	maxPlayerBody = 20_000_000
)

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName        string `json:"clientName"`
			ClientVersion     string `json:"clientVersion"`
			AndroidSdkVersion int    `json:"androidSdkVersion"`
			Hl                string `json:"hl"`
			Gl                string `json:"gl"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

func newPlayerRequest(videoID string) playerRequest {
	var req playerRequest
	req.Context.Client.ClientName = clientName
	req.Context.Client.ClientVersion = clientVersion
	req.Context.Client.AndroidSdkVersion = androidSdkVersion
	req.Context.Client.Hl = "en"
	req.Context.Client.Gl = "US"
	req.VideoID = videoID
	return req
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" pour les pistes générées
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// IsAuto indique une piste générée automatiquement (reconnaissance vocale).
func (t captionTrack) IsAuto() bool { return t.Kind == "asr" }

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		VideoID       string `json:"videoId"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		LengthSeconds string `json:"lengthSeconds"`
	} `json:"videoDetails"`
}

func (r *playerResponse) lengthSeconds() int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(r.VideoDetails.LengthSeconds), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// usableTracks retourne les pistes exploitables. Les pistes dont l'URL porte
// le marqueur "&exp=xpe" exigent un jeton supplémentaire que ce client ne
// fournit pas ; elles sont écartées.
func (r *playerResponse) usableTracks() []captionTrack {
	var out []captionTrack
	for _, t := range r.Captions.Renderer.CaptionTracks {
		if t.BaseURL == "" || strings.Contains(t.BaseURL, "&exp=xpe") {
			continue
		}
		out = append(out, t)
	}
	return out
}

// fetchPlayerData poste la requête player et décode la réponse.
func fetchPlayerData(ctx context.Context, client *http.Client, playerURL, videoID string) (*playerResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = &http.Client{}
	}

	body, err := json.Marshal(newPlayerRequest(videoID))
	if err != nil {
		return nil, fmt.Errorf("captions: marshal player request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, playerTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("captions: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", clientVersion)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("captions: player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("captions: unexpected http status %s: %w", resp.Status, fetch.ErrStatus)
	}

	var pr playerResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxPlayerBody))
	if err := dec.Decode(&pr); err != nil {
		return nil, fmt.Errorf("captions: decode player response: %w", err)
	}
	return &pr, nil
}
