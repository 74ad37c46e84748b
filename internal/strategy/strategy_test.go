package strategy_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mdload/internal/domain/command"
	"mdload/internal/domain/consts"
	"mdload/internal/domain/errconsts"
	"mdload/internal/models"
	"mdload/internal/strategy"
)

// fakeEngine serves canned entries and fails inspection for chosen IDs.
type fakeEngine struct {
	listed      []*models.MediaEntry
	listErr     error
	failInspect map[string]bool
	inspected   []string
}

func (f *fakeEngine) List(_ context.Context, _ *models.MediaRequest) ([]*models.MediaEntry, error) {
	return f.listed, f.listErr
}

func (f *fakeEngine) Inspect(_ context.Context, _ *models.MediaRequest, e *models.MediaEntry) (*models.MediaEntry, error) {
	f.inspected = append(f.inspected, e.ID)
	if f.failInspect[e.ID] {
		return nil, fmt.Errorf("video %s is unavailable", e.ID)
	}
	d := *e
	d.Detailed = true
	d.Formats = []models.Format{{ID: "18", Ext: "mp4", HasVideo: true, HasAudio: true, Height: 360}}
	return &d, nil
}

func (f *fakeEngine) Execute(_ context.Context, p *models.DownloadPlan) (*models.ExecutionResult, error) {
	return &models.ExecutionResult{Path: p.FinalPath}, nil
}

func request(t *testing.T) *models.MediaRequest {
	t.Helper()
	return &models.MediaRequest{
		URL:         "https://example.com/watch?v=abc",
		OutputDir:   t.TempDir(),
		AutoConfirm: true,
	}
}

// TestClassify checks the strategy chosen for each format mix ---------------------------------------------------------------
func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		formats []models.Format
		want    models.Kind
		wantErr error
	}{
		{
			name:    "combined stream",
			formats: []models.Format{{HasVideo: true, HasAudio: true, Height: 1080}},
			want:    models.KindVideoMux,
		},
		{
			name: "separate video and audio",
			formats: []models.Format{
				{HasAudio: true, BitrateKbps: 128},
				{HasVideo: true, Height: 720},
			},
			want: models.KindVideoMux,
		},
		{
			name:    "video without audio",
			formats: []models.Format{{HasVideo: true, Height: 480}},
			want:    models.KindVideoMux,
		},
		{
			name: "audio only",
			formats: []models.Format{
				{HasAudio: true, BitrateKbps: 64},
				{HasAudio: true, BitrateKbps: 128},
			},
			want: models.KindAudioExtract,
		},
		{
			name:    "no playable stream",
			formats: []models.Format{{ID: "sb0", Ext: "mhtml"}},
			wantErr: errconsts.ErrUnsupportedMedia,
		},
		{
			name:    "no formats at all",
			wantErr: errconsts.ErrUnsupportedMedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.Classify(&models.MediaEntry{ID: "x", Formats: tt.formats})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClassifyFallsBackToEntryHints(t *testing.T) {
	audio := &models.MediaEntry{ID: "a", Ext: "mp3", VCodec: "none", ACodec: "mp3"}
	if k, err := strategy.Classify(audio); err != nil || k != models.KindAudioExtract {
		t.Fatalf("expected audio from top-level hints, got %v, %v", k, err)
	}

	live := &models.MediaEntry{ID: "l", IsLive: true}
	if k, err := strategy.Classify(live); err != nil || k != models.KindVideoMux {
		t.Fatalf("expected video for live entry, got %v, %v", k, err)
	}

	sized := &models.MediaEntry{ID: "s", Width: 1280, Height: 720}
	if k, err := strategy.Classify(sized); err != nil || k != models.KindVideoMux {
		t.Fatalf("expected video for entry with dimensions, got %v, %v", k, err)
	}
}

func TestDetectStreams(t *testing.T) {
	tests := []struct {
		vcodec, acodec, ext string
		height              int
		video, audio        bool
	}{
		{"avc1.64001F", "mp4a.40.2", "mp4", 720, true, true},
		{"none", "opus", "webm", 0, false, true},
		{"vp9", "none", "webm", 1080, true, false},
		{"", "", "mp4", 0, true, true},
		{"", "", "m4a", 0, false, true},
		{"", "", "mhtml", 0, false, false},
		{"", "none", "", 360, true, false},
	}
	for _, tt := range tests {
		v, a := strategy.DetectStreams(tt.vcodec, tt.acodec, tt.ext, 0, tt.height)
		if v != tt.video || a != tt.audio {
			t.Fatalf("DetectStreams(%q, %q, %q, %d) = %v, %v; want %v, %v",
				tt.vcodec, tt.acodec, tt.ext, tt.height, v, a, tt.video, tt.audio)
		}
	}
}

// TestBuildPlan covers the two single-entry scenarios ------------------------------------------------------------------------
func TestBuildPlanVideoScenario(t *testing.T) {
	req := request(t)
	entry := &models.MediaEntry{
		ID:      "abc",
		Title:   "Launch Day",
		Formats: []models.Format{{ID: "137", Ext: "webm", HasVideo: true, HasAudio: true, Height: 1080}},
	}

	kind, err := strategy.Classify(entry)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	plan := strategy.BuildPlan(entry, kind, req)

	if plan.Kind != models.KindVideoMux {
		t.Fatalf("expected VideoMux, got %v", plan.Kind)
	}
	if plan.FormatSelector != command.SelectVideoMux {
		t.Fatalf("unexpected selector %q", plan.FormatSelector)
	}
	if !strings.HasSuffix(plan.FinalPath, ".mp4") {
		t.Fatalf("expected .mp4 output, got %q", plan.FinalPath)
	}
	if plan.PostProcessing.TargetContainer != consts.ContainerMP4 {
		t.Fatalf("expected mp4 container, got %q", plan.PostProcessing.TargetContainer)
	}
	if !plan.PostProcessing.Remux {
		t.Fatalf("video plans should remux to mp4")
	}
	if filepath.Dir(plan.FinalPath) != req.OutputDir {
		t.Fatalf("output %q escaped directory %q", plan.FinalPath, req.OutputDir)
	}
	if !strings.HasSuffix(plan.OutputTemplate, command.ExtSuffix) {
		t.Fatalf("template %q missing extension placeholder", plan.OutputTemplate)
	}
}

func TestBuildPlanAudioScenario(t *testing.T) {
	req := request(t)
	entry := &models.MediaEntry{
		ID:      "pod1",
		Title:   "Episode 1",
		Formats: []models.Format{{ID: "140", Ext: "m4a", ACodec: "mp4a.40.2", HasAudio: true, BitrateKbps: 128}},
	}

	kind, err := strategy.Classify(entry)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	plan := strategy.BuildPlan(entry, kind, req)

	if plan.Kind != models.KindAudioExtract {
		t.Fatalf("expected AudioExtract, got %v", plan.Kind)
	}
	if plan.PostProcessing.TargetCodec != consts.CodecMP3 || plan.PostProcessing.TargetBitrateKbps != 192 {
		t.Fatalf("expected mp3 @192, got %+v", plan.PostProcessing)
	}
	if !plan.PostProcessing.Transcode {
		t.Fatalf("audio plans should pin the bitrate")
	}
	if !strings.HasSuffix(plan.FinalPath, ".mp3") {
		t.Fatalf("expected .mp3 output, got %q", plan.FinalPath)
	}
}

// TestBuildPlanIgnoresFormatRanking checks post-processing does not depend on
// which format looks best locally, since yt-dlp ranks codecs first.
func TestBuildPlanIgnoresFormatRanking(t *testing.T) {
	req := request(t)

	combined := &models.MediaEntry{ID: "v", Formats: []models.Format{
		{Ext: "webm", VCodec: "vp9", ACodec: "opus", HasVideo: true, HasAudio: true, Height: 720, BitrateKbps: 600},
		{Ext: "mp4", VCodec: "avc1", ACodec: "mp4a", HasVideo: true, HasAudio: true, Height: 720, BitrateKbps: 900},
	}}
	plan := strategy.BuildPlan(combined, models.KindVideoMux, req)
	if !plan.PostProcessing.Remux || plan.PostProcessing.TargetContainer != consts.ContainerMP4 {
		t.Fatalf("video plans must always remux to mp4, got %+v", plan.PostProcessing)
	}

	audio := &models.MediaEntry{ID: "a", Formats: []models.Format{
		{Ext: "webm", ACodec: "opus", HasAudio: true, BitrateKbps: 160},
		{Ext: "mp3", ACodec: "mp3", HasAudio: true, BitrateKbps: 320},
	}}
	plan = strategy.BuildPlan(audio, models.KindAudioExtract, req)
	if !plan.PostProcessing.Transcode || plan.PostProcessing.TargetBitrateKbps != consts.DefaultAudioBitrateKbps {
		t.Fatalf("audio plans must always pin the bitrate, got %+v", plan.PostProcessing)
	}
}

func TestBuildPlanCustomBitrate(t *testing.T) {
	req := request(t)
	req.AudioBitrateKbps = 256
	entry := &models.MediaEntry{ID: "a", Formats: []models.Format{{HasAudio: true}}}

	plan := strategy.BuildPlan(entry, models.KindAudioExtract, req)
	if plan.PostProcessing.TargetBitrateKbps != 256 {
		t.Fatalf("expected 256 kbps, got %d", plan.PostProcessing.TargetBitrateKbps)
	}
}

func TestBuildPlanDeterministic(t *testing.T) {
	req := request(t)
	req.Headers = map[string]string{"Authorization": "Bearer x"}
	entry := &models.MediaEntry{
		ID:    "abc",
		Title: "Same 100% Title",
		Formats: []models.Format{
			{Ext: "m4a", HasAudio: true, BitrateKbps: 128},
			{Ext: "mp4", HasVideo: true, Height: 1080},
		},
	}

	first := strategy.BuildPlan(entry, models.KindVideoMux, req)
	second := strategy.BuildPlan(entry, models.KindVideoMux, req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%+v\n%+v", first, second)
	}
	if !strings.Contains(first.OutputTemplate, "100%% Title") {
		t.Fatalf("literal %% not escaped in template %q", first.OutputTemplate)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Normal Title":        "Normal Title",
		"../../etc/passwd":    "_._etc_passwd",
		`a<b>c:d"e|f?g*h\i`:   "a_b_c_d_e_f_g_h_i",
		"  spaced \t\n out  ": "spaced out",
		"...":                 consts.UntitledEntry,
		"":                    consts.UntitledEntry,
		"CON":                 "_CON",
		"nul.txt":             "_nul.txt",
		"trailing dot.":       "trailing dot",
		"bad\xffutf8":         "bad_utf8",
		"ctrl\x00char":        "ctrl char",
		"Ünïcödé títle ✓":     "Ünïcödé títle ✓",
	}
	for in, want := range tests {
		if got := strategy.SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}

	long := strings.Repeat("é", 200)
	got := strategy.SanitizeFilename(long)
	if len(got) > consts.MaxFilenameBytes {
		t.Fatalf("expected at most %d bytes, got %d", consts.MaxFilenameBytes, len(got))
	}
	if strings.ContainsRune(got, '�') {
		t.Fatalf("truncation split a rune: %q", got)
	}
}

func TestOutputBaseName(t *testing.T) {
	if got := strategy.OutputBaseName(&models.MediaEntry{ID: "abc", Title: "A/B"}); got != "A_B - abc" {
		t.Fatalf("unexpected base name %q", got)
	}
	if got := strategy.OutputBaseName(&models.MediaEntry{ID: "abc"}); got != "abc" {
		t.Fatalf("unexpected base name for untitled entry %q", got)
	}
}

// TestResolveEntries checks playlist resolution keeps going past failures ----------------------------------------------------
func TestResolveEntriesContinuesPastFailure(t *testing.T) {
	eng := &fakeEngine{
		listed: []*models.MediaEntry{
			{ID: "e1", Title: "One", URL: "https://example.com/1"},
			{ID: "e2", Title: "Two", URL: "https://example.com/2"},
			{ID: "e3", Title: "Three", URL: "https://example.com/3"},
		},
		failInspect: map[string]bool{"e2": true},
	}
	sel := strategy.NewSelector(eng)

	var (
		ids    []string
		errIdx []int
		i      int
	)
	for entry, err := range sel.ResolveEntries(context.Background(), request(t)) {
		ids = append(ids, entry.ID)
		if err != nil {
			if !errors.Is(err, errconsts.ErrResolution) {
				t.Fatalf("expected resolution error, got %v", err)
			}
			errIdx = append(errIdx, i)
		}
		i++
	}

	if want := []string{"e1", "e2", "e3"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	if !reflect.DeepEqual(errIdx, []int{1}) {
		t.Fatalf("expected error at index 1, got %v", errIdx)
	}
	if len(eng.inspected) != 3 {
		t.Fatalf("expected every entry inspected, got %v", eng.inspected)
	}
}

func TestResolveEntriesListingFailure(t *testing.T) {
	sel := strategy.NewSelector(&fakeEngine{listErr: errors.New("unsupported URL")})

	var count int
	for entry, err := range sel.ResolveEntries(context.Background(), request(t)) {
		count++
		if entry != nil {
			t.Fatalf("expected nil entry, got %+v", entry)
		}
		if !errors.Is(err, errconsts.ErrResolution) {
			t.Fatalf("expected resolution error, got %v", err)
		}
	}
	if count != 1 {
		t.Fatalf("expected a single failure, got %d yields", count)
	}
}

func TestResolveEntriesSkipsInspectionWhenDetailed(t *testing.T) {
	eng := &fakeEngine{listed: []*models.MediaEntry{{ID: "solo", Detailed: true, Formats: []models.Format{{HasAudio: true}}}}}
	sel := strategy.NewSelector(eng)

	for _, err := range sel.ResolveEntries(context.Background(), request(t)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(eng.inspected) != 0 {
		t.Fatalf("detailed entry should not be re-inspected, got %v", eng.inspected)
	}
}
