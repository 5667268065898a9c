/* config.go
 * Contains the process configuration and the catalogue of tournaments the pool has been run for. Each tournament
 * lives in its own database; its weight schedule sets the stake of a match from its kickoff date
 */

package config

import (
	"fmt"
	"time"

	"handicap-pool/api/shared"
)

// weightDateLayout is the layout of the dates of a weight schedule
const weightDateLayout = "2006-01-02"

type Config struct {
	// MongoURI is the connection string of the db server
	MongoURI string `koanf:"mongo_uri"`

	// Tournament is the db name of the active tournament
	Tournament string `koanf:"tournament"`

	// Addr is the listen address of the web server
	Addr string `koanf:"addr"`

	// UTCOffsetHours is the offset of the tournament's civil time from UTC. Match times are stored in this zone
	UTCOffsetHours int `koanf:"utc_offset_hours"`

	// RequiredGamblers must pick a side of every match. Empty means every registered gambler
	RequiredGamblers []string `koanf:"required_gamblers"`

	// MaxMatchDisplay caps how many matches the bot lists
	MaxMatchDisplay int `koanf:"max_match_display"`

	// LogLevel controls verbosity: debug, info, warn, error
	LogLevel string `koanf:"log_level"`

	// DiscordToken is the bot token
	DiscordToken string `koanf:"discord_token"`

	// BetRatePerMinute is how many commands a single user may issue per minute
	BetRatePerMinute int `koanf:"bet_rate_per_minute"`

	Tournaments []Tournament `koanf:"tournaments"`
}

type Tournament struct {
	DBName         string       `koanf:"db_name"`
	League         string       `koanf:"league"`
	Display        string       `koanf:"display"`
	WeightSchedule []WeightStep `koanf:"weight_schedule"`
}

// WeightStep gives the weight of matches kicking off before a date (YYYY-MM-DD, tournament civil time). The date is
// the day after the last match day of a phase
type WeightStep struct {
	Before string  `koanf:"before"`
	Weight float64 `koanf:"weight"`
}

// New returns a Config holding the defaults
func New() *Config {
	return &Config{
		MongoURI:         "mongodb://localhost:27017/",
		Tournament:       "eurocup2024",
		Addr:             ":8010",
		UTCOffsetHours:   8,
		MaxMatchDisplay:  20,
		LogLevel:         "info",
		BetRatePerMinute: 10,
		Tournaments:      defaultTournaments(),
	}
}

func defaultTournaments() []Tournament {
	return []Tournament{
		{
			DBName:  "eurocup2016",
			League:  "欧国杯",
			Display: "2016 欧洲杯",
			WeightSchedule: []WeightStep{
				{Before: "2016-06-23", Weight: 2}, // group games
				{Before: "2016-06-28", Weight: 4}, // 1/8 final
				{Before: "2016-07-04", Weight: 6}, // 1/4 final
				{Before: "2016-07-08", Weight: 8}, // semi final
				{Before: "2016-07-11", Weight: 10},
			},
		},
		{
			DBName:  "2018-international-friendlies",
			League:  "国友赛",
			Display: "2018 国友赛",
		},
		{
			DBName:  "worldcup2018",
			League:  "世界杯",
			Display: "2018 世界杯",
			WeightSchedule: []WeightStep{
				{Before: "2018-07-05", Weight: 2}, // group games + 1/8 final
				{Before: "2018-07-09", Weight: 4}, // 1/4 final
				{Before: "2018-07-13", Weight: 8}, // semi final
				{Before: "2018-07-16", Weight: 16},
			},
		},
		{
			DBName:  "championsleague20182019",
			League:  "欧联",
			Display: "18-19 欧冠",
			WeightSchedule: []WeightStep{
				{Before: "2019-04-19", Weight: 4}, // 1/4 final
				{Before: "2019-05-10", Weight: 8}, // semi final
				{Before: "2019-06-03", Weight: 16},
			},
		},
		{
			DBName:  "worldcup2022",
			League:  "世界盃",
			Display: "2022 世界杯",
			WeightSchedule: []WeightStep{
				{Before: "2022-12-08", Weight: 2}, // group games + 1/8 final
				{Before: "2022-12-13", Weight: 4}, // 1/4 final
				{Before: "2022-12-16", Weight: 8}, // semi final
				{Before: "2022-12-19", Weight: 16},
			},
		},
		{
			DBName:  "eurocup2024",
			League:  "欧国杯",
			Display: "2024 欧洲杯",
			WeightSchedule: []WeightStep{
				{Before: "2024-07-04", Weight: 2}, // 1/8 final
				{Before: "2024-07-08", Weight: 4}, // 1/4 final
				{Before: "2024-07-12", Weight: 8}, // semi final
				{Before: "2024-07-16", Weight: 16},
			},
		},
	}
}

// ActiveTournament returns the tournament named by Tournament
func (c *Config) ActiveTournament() (Tournament, error) {
	return c.FindTournament(c.Tournament)
}

// FindTournament returns the tournament stored in the given db
func (c *Config) FindTournament(dbName string) (Tournament, error) {
	for _, t := range c.Tournaments {
		if t.DBName == dbName {
			return t, nil
		}
	}
	return Tournament{}, fmt.Errorf("%w: unknown tournament %q", ErrInvalidConfig, dbName)
}

// Location returns the fixed zone of the tournament's civil time
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*60*60)
}

// Schedule converts the weight schedule into naive civil times ordered as configured
func (t Tournament) Schedule() ([]shared.WeightStep, error) {
	steps := make([]shared.WeightStep, 0, len(t.WeightSchedule))
	for _, step := range t.WeightSchedule {
		before, err := time.Parse(weightDateLayout, step.Before)
		if err != nil {
			return nil, fmt.Errorf("%w: tournament %s: bad weight schedule date %q", ErrInvalidConfig, t.DBName, step.Before)
		}
		if step.Weight <= 0 {
			return nil, fmt.Errorf("%w: tournament %s: weight must be positive", ErrInvalidConfig, t.DBName)
		}
		steps = append(steps, shared.WeightStep{Before: before, Weight: step.Weight})
	}
	return steps, nil
}

// Validate checks the fields the service cannot start without
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("%w: mongo_uri must not be empty", ErrInvalidConfig)
	}
	if c.MaxMatchDisplay <= 0 {
		return fmt.Errorf("%w: max_match_display must be positive", ErrInvalidConfig)
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("%w: utc_offset_hours out of range", ErrInvalidConfig)
	}
	t, err := c.ActiveTournament()
	if err != nil {
		return err
	}
	if _, err := t.Schedule(); err != nil {
		return err
	}
	return nil
}
