package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

var base = time.Date(2024, 3, 7, 9, 30, 0, 0, time.UTC)

func msg(name, text string, at time.Time, likes, attachments int) models.Message {
	m := models.Message{
		Name:      name,
		Text:      text,
		CreatedAt: at.Unix(),
	}
	for i := 0; i < likes; i++ {
		m.FavoritedBy = append(m.FavoritedBy, fmt.Sprintf("u%d", i))
	}
	for i := 0; i < attachments; i++ {
		m.Attachments = append(m.Attachments, models.Attachment{Type: "image"})
	}
	return m
}

// fixture returns a newest-first conversation between three users.
func fixture() []models.Message {
	return []models.Message{
		msg("Bob", "see you", base.Add(26*time.Hour), 0, 0),
		msg("Alice", "ok", base.Add(25*time.Hour), 1, 0),
		msg("Carol", "", base.Add(3*time.Hour), 0, 2),
		msg("Alice", "abcd", base.Add(2*time.Hour), 3, 1),
		msg("Bob", "hello there", base.Add(time.Hour), 2, 0),
		msg("Alice", "ab", base, 0, 0),
	}
}

func TestMessageCount(t *testing.T) {
	msgs := fixture()
	got := MessageCount(msgs)
	want := Counts{"Alice": 3, "Bob": 2, "Carol": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MessageCount() = %v, want %v", got, want)
	}
	if got.Total() != len(msgs) {
		t.Errorf("Total() = %d, want %d", got.Total(), len(msgs))
	}
}

func TestMessageCount_MissingName(t *testing.T) {
	msgs := []models.Message{{Text: "anonymous"}, {Name: "Dan"}}
	got := MessageCount(msgs)
	if got[""] != 1 || got["Dan"] != 1 {
		t.Errorf("MessageCount() = %v, want empty-name key counted", got)
	}
}

func TestMessageCount_Empty(t *testing.T) {
	got := MessageCount(nil)
	if len(got) != 0 {
		t.Errorf("MessageCount(nil) = %v, want empty", got)
	}
}

func TestAverageLength(t *testing.T) {
	tests := []struct {
		name      string
		msgs      []models.Message
		threshold int
		want      Averages
	}{
		{
			name: "two messages average to three",
			msgs: []models.Message{
				msg("Alice", "ab", base, 0, 0),
				msg("Alice", "abcd", base, 0, 0),
			},
			want: Averages{"Alice": 3.0},
		},
		{
			name: "empty text counts toward message count",
			msgs: []models.Message{
				msg("Carol", "", base, 0, 0),
				msg("Carol", "abcdef", base, 0, 0),
			},
			want: Averages{"Carol": 3.0},
		},
		{
			name: "length counts characters not bytes",
			msgs: []models.Message{
				msg("Eve", "héllo", base, 0, 0),
			},
			want: Averages{"Eve": 5.0},
		},
		{
			name:      "threshold is exclusive",
			msgs:      fixture(),
			threshold: 2,
			want:      Averages{"Alice": 8.0 / 3.0},
		},
		{
			name:      "threshold above everyone",
			msgs:      fixture(),
			threshold: 3,
			want:      Averages{},
		},
		{
			name: "no threshold keeps everyone",
			msgs: fixture(),
			want: Averages{"Alice": 8.0 / 3.0, "Bob": 9.0, "Carol": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageLength(tt.msgs, Options{Threshold: tt.threshold})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AverageLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttachmentCount(t *testing.T) {
	got := AttachmentCount(fixture())
	want := Counts{"Alice": 1, "Bob": 0, "Carol": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AttachmentCount() = %v, want %v", got, want)
	}
}

func TestLikes(t *testing.T) {
	tests := []struct {
		name string
		msgs []models.Message
		opts Options
		want Averages
	}{
		{
			name: "totals",
			msgs: fixture(),
			want: Averages{"Alice": 4, "Bob": 2, "Carol": 0},
		},
		{
			name: "average of two and zero is one",
			msgs: []models.Message{
				msg("Alice", "a", base, 2, 0),
				msg("Alice", "b", base, 0, 0),
			},
			opts: Options{Average: true},
			want: Averages{"Alice": 1.0},
		},
		{
			name: "threshold drops users before averaging",
			msgs: fixture(),
			opts: Options{Threshold: 1, Average: true},
			want: Averages{"Alice": 4.0 / 3.0, "Bob": 1.0},
		},
		{
			name: "threshold on totals",
			msgs: fixture(),
			opts: Options{Threshold: 2},
			want: Averages{"Alice": 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Likes(tt.msgs, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Likes() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The averaged likes use the unfiltered message count as the denominator.
// For every surviving user it must equal the user's own message count.
func TestLikes_AverageDenominatorIsFullCount(t *testing.T) {
	msgs := fixture()
	counts := MessageCount(msgs)
	totals := Likes(msgs, Options{Threshold: 1})
	averages := Likes(msgs, Options{Threshold: 1, Average: true})

	if len(totals) != len(averages) {
		t.Fatalf("average changed the key set: totals=%v averages=%v", totals, averages)
	}
	for user, total := range totals {
		want := total / float64(counts[user])
		if averages[user] != want {
			t.Errorf("average[%s] = %v, want %v", user, averages[user], want)
		}
	}
}

func TestThresholdedKeysExceedThreshold(t *testing.T) {
	msgs := fixture()
	counts := MessageCount(msgs)

	for threshold := 0; threshold <= 4; threshold++ {
		opts := Options{Threshold: threshold}
		for user := range AverageLength(msgs, opts) {
			if counts[user] <= threshold {
				t.Errorf("AverageLength threshold %d kept %s with %d messages", threshold, user, counts[user])
			}
		}
		opts.Average = true
		for user := range Likes(msgs, opts) {
			if counts[user] <= threshold {
				t.Errorf("Likes threshold %d kept %s with %d messages", threshold, user, counts[user])
			}
		}
	}
}

func TestNoKeyForAbsentUser(t *testing.T) {
	msgs := fixture()
	const ghost = "Mallory"

	if _, ok := MessageCount(msgs)[ghost]; ok {
		t.Error("MessageCount has absent user")
	}
	if _, ok := AverageLength(msgs, Options{})[ghost]; ok {
		t.Error("AverageLength has absent user")
	}
	if _, ok := AttachmentCount(msgs)[ghost]; ok {
		t.Error("AttachmentCount has absent user")
	}
	if _, ok := Likes(msgs, Options{Average: true})[ghost]; ok {
		t.Error("Likes has absent user")
	}
	if _, ok := HourHistogram(msgs, time.UTC)[ghost]; ok {
		t.Error("HourHistogram has absent user")
	}
	for day, counts := range MessagesPerDay(msgs, time.UTC) {
		if _, ok := counts[ghost]; ok {
			t.Errorf("MessagesPerDay[%s] has absent user", day)
		}
	}
}

func TestMessagesPerDay(t *testing.T) {
	got := MessagesPerDay(fixture(), time.UTC)
	want := DayCounts{
		"3/7/2024": {"Alice": 2, "Bob": 1, "Carol": 1},
		"3/8/2024": {"Alice": 1, "Bob": 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MessagesPerDay() = %v, want %v", got, want)
	}
}

func TestMessagesPerDay_Location(t *testing.T) {
	// 02:00 UTC on March 8 is still March 7 in New York.
	at := time.Date(2024, 3, 8, 2, 0, 0, 0, time.UTC)
	msgs := []models.Message{msg("Alice", "late", at, 0, 0)}

	ny := time.FixedZone("EST", -5*3600)
	if _, ok := MessagesPerDay(msgs, ny)["3/7/2024"]; !ok {
		t.Errorf("expected bucket 3/7/2024 in EST, got %v", MessagesPerDay(msgs, ny))
	}
	if _, ok := MessagesPerDay(msgs, time.UTC)["3/8/2024"]; !ok {
		t.Errorf("expected bucket 3/8/2024 in UTC, got %v", MessagesPerDay(msgs, time.UTC))
	}
}

func TestMessagesPerDay_SumsToMessageCount(t *testing.T) {
	msgs := fixture()
	days := MessagesPerDay(msgs, time.UTC)
	for user, n := range MessageCount(msgs) {
		if got := days.UserTotal(user); got != n {
			t.Errorf("per-day total for %s = %d, want %d", user, got, n)
		}
	}
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2021, 3, 7, 0, 0, 0, 0, time.UTC), "3/7/2021"},
		{time.Date(2021, 12, 31, 23, 59, 0, 0, time.UTC), "12/31/2021"},
		{time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), "1/1/2020"},
	}
	for _, tt := range tests {
		if got := DayKey(tt.t); got != tt.want {
			t.Errorf("DayKey(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestSortedDays(t *testing.T) {
	days := DayCounts{
		"12/1/2023": {"a": 1},
		"2/10/2024": {"a": 1},
		"2/9/2024":  {"a": 2, "b": 1},
	}
	got := SortedDays(days)
	want := []string{"12/1/2023", "2/9/2024", "2/10/2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedDays() = %v, want %v", got, want)
	}

	totals := DayTotals(days)
	if len(totals) != 3 || totals[1].Key != "2/9/2024" || totals[1].Value != 3 {
		t.Errorf("DayTotals() = %v", totals)
	}
}

func TestHourHistogram(t *testing.T) {
	msgs := fixture()
	got := HourHistogram(msgs, time.UTC)

	var alice [HoursPerDay]int
	alice[9] = 1  // base
	alice[11] = 1 // base+2h
	alice[10] = 1 // base+25h
	if got["Alice"] != alice {
		t.Errorf("Alice histogram = %v, want %v", got["Alice"], alice)
	}

	for user, n := range MessageCount(msgs) {
		if sum := got.Sum(user); sum != n {
			t.Errorf("histogram sum for %s = %d, want %d", user, sum, n)
		}
	}
	if users := got.Users(); !reflect.DeepEqual(users, []string{"Alice", "Bob", "Carol"}) {
		t.Errorf("Users() = %v", users)
	}
}

func TestHourHistogram_Location(t *testing.T) {
	msgs := []models.Message{msg("Alice", "x", base, 0, 0)}
	plus2 := time.FixedZone("UTC+2", 2*3600)
	if got := HourHistogram(msgs, plus2)["Alice"][11]; got != 1 {
		t.Errorf("hour 11 in UTC+2 = %d, want 1", got)
	}
}

func TestSortByValue(t *testing.T) {
	got := SortByValue(Averages{"b": 2.5, "a": 2.5, "c": 0.5, "d": 9})
	want := []Entry[float64]{
		{Key: "c", Value: 0.5},
		{Key: "a", Value: 2.5},
		{Key: "b", Value: 2.5},
		{Key: "d", Value: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByValue() = %v, want %v", got, want)
	}

	ints := SortByValue(Counts{"x": 3, "y": 1})
	if ints[0].Key != "y" || ints[1].Key != "x" {
		t.Errorf("SortByValue(Counts) = %v", ints)
	}
	if f := ToFloat(ints); f[1].Value != 3.0 {
		t.Errorf("ToFloat() = %v", f)
	}
}

func TestAggregatorsAreIdempotent(t *testing.T) {
	msgs := fixture()
	snapshot := fixture()
	opts := Options{Threshold: 1, Average: true, Location: time.UTC}

	checks := []struct {
		name string
		run  func() any
	}{
		{"count", func() any { return MessageCount(msgs) }},
		{"len", func() any { return AverageLength(msgs, opts) }},
		{"attachments", func() any { return AttachmentCount(msgs) }},
		{"likes", func() any { return Likes(msgs, opts) }},
		{"perday", func() any { return MessagesPerDay(msgs, time.UTC) }},
		{"perhour", func() any { return HourHistogram(msgs, time.UTC) }},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			first, second := c.run(), c.run()
			if !reflect.DeepEqual(first, second) {
				t.Errorf("second run = %v, first = %v", second, first)
			}
		})
	}

	if !reflect.DeepEqual(msgs, snapshot) {
		t.Error("aggregators mutated the input")
	}
}

func TestSummarize(t *testing.T) {
	msgs := fixture()
	opts := Options{Threshold: 1, Location: time.UTC}

	s, err := Summarize(context.Background(), msgs, opts)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.Messages != len(msgs) || s.Users != 3 {
		t.Errorf("Messages=%d Users=%d", s.Messages, s.Users)
	}
	if !reflect.DeepEqual(s.MessageCount, MessageCount(msgs)) {
		t.Errorf("MessageCount = %v", s.MessageCount)
	}
	if !reflect.DeepEqual(s.AverageLength, AverageLength(msgs, opts)) {
		t.Errorf("AverageLength = %v", s.AverageLength)
	}
	if !reflect.DeepEqual(s.Attachments, AttachmentCount(msgs)) {
		t.Errorf("Attachments = %v", s.Attachments)
	}
	if !reflect.DeepEqual(s.Likes, Likes(msgs, opts)) {
		t.Errorf("Likes = %v", s.Likes)
	}
	avg := opts
	avg.Average = true
	if !reflect.DeepEqual(s.AverageLikes, Likes(msgs, avg)) {
		t.Errorf("AverageLikes = %v", s.AverageLikes)
	}
	if !reflect.DeepEqual(s.PerDay, MessagesPerDay(msgs, time.UTC)) {
		t.Errorf("PerDay = %v", s.PerDay)
	}
	if !reflect.DeepEqual(s.PerHour, HourHistogram(msgs, time.UTC)) {
		t.Errorf("PerHour = %v", s.PerHour)
	}
	if s.FirstMessage == nil || s.LastMessage == nil {
		t.Fatal("expected a message span")
	}
	if !s.FirstMessage.Equal(base) || !s.LastMessage.Equal(base.Add(26*time.Hour)) {
		t.Errorf("span = %v - %v", s.FirstMessage, s.LastMessage)
	}
	if s.Location != "UTC" {
		t.Errorf("Location = %q", s.Location)
	}
}

func TestSummarize_EmptyHasNoSpan(t *testing.T) {
	s, err := Summarize(context.Background(), nil, Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.FirstMessage != nil || s.LastMessage != nil {
		t.Errorf("span = %v - %v, want nil", s.FirstMessage, s.LastMessage)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	for _, unwanted := range []string{"first_message", "last_message", "0001-01-01"} {
		if strings.Contains(string(data), unwanted) {
			t.Errorf("summary JSON contains %q: %s", unwanted, data)
		}
	}
}

func TestSummarize_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Summarize(ctx, fixture(), DefaultOptions()); err == nil {
		t.Error("expected error for canceled context")
	}
}
