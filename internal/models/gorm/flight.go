package gorm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"

	"openpilotlog/logbook/internal/calc"
)

// Flight is one logbook entry. Times are UTC wall clock times on Doft, the
// date of flight, and the landing may fall on the next day.
type Flight struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Doft          string    `gorm:"column:doft;type:varchar(10);not null;index"`
	Dept          string    `gorm:"column:dept;type:varchar(4);not null"`
	Dest          string    `gorm:"column:dest;type:varchar(4);not null"`
	OffBlocks     string    `gorm:"column:tofb;type:varchar(5);not null"`
	OnBlocks      string    `gorm:"column:tonb;type:varchar(5);not null"`
	BlockMinutes  int       `gorm:"column:block_minutes;not null;default:0"`
	NightMinutes  int       `gorm:"column:night_minutes;not null;default:0"`
	TakeoffsDay   int       `gorm:"column:takeoffs_day;not null;default:0"`
	TakeoffsNight int       `gorm:"column:takeoffs_night;not null;default:0"`
	LandingsDay   int       `gorm:"column:landings_day;not null;default:0"`
	LandingsNight int       `gorm:"column:landings_night;not null;default:0"`
	Remarks       string    `gorm:"column:remarks;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Flight) TableName() string {
	return "flights"
}

func (f *Flight) BeforeCreate(tx *gormlib.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave derives block minutes from the block times whenever both are valid.
func (f *Flight) BeforeSave(tx *gormlib.DB) error {
	off := calc.ParseClockMinutes(f.OffBlocks, calc.DefaultTimeFormat)
	on := calc.ParseClockMinutes(f.OnBlocks, calc.DefaultTimeFormat)
	if block := calc.BlockTime(off, on); block.IsValid() {
		f.BlockMinutes = block.Minutes()
	}
	return nil
}

// DepartureInstant combines the date of flight with the off-blocks time.
func (f Flight) DepartureInstant() (time.Time, error) {
	day, err := calc.ParseDate(f.Doft)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date of flight %q: %w", f.Doft, err)
	}
	off := calc.ParseClockMinutes(f.OffBlocks, calc.DefaultTimeFormat)
	if !off.IsValidTimeOfDay() {
		return time.Time{}, fmt.Errorf("invalid off-blocks time %q", f.OffBlocks)
	}
	return day.Add(time.Duration(off.Minutes()) * time.Minute), nil
}

// Takeoffs is the total number of take-offs regardless of light conditions.
func (f Flight) Takeoffs() int { return f.TakeoffsDay + f.TakeoffsNight }

func (f Flight) Landings() int { return f.LandingsDay + f.LandingsNight }

// ApplyNightTime stores night minutes and moves take-offs and landings into the
// night or day counter according to the flags.
func (f *Flight) ApplyNightTime(v calc.NightTimeValues) {
	f.NightMinutes = v.NightMinutes

	takeoffs, landings := f.Takeoffs(), f.Landings()
	if v.TakeOffNight {
		f.TakeoffsDay, f.TakeoffsNight = 0, takeoffs
	} else {
		f.TakeoffsDay, f.TakeoffsNight = takeoffs, 0
	}
	if v.LandingNight {
		f.LandingsDay, f.LandingsNight = 0, landings
	} else {
		f.LandingsDay, f.LandingsNight = landings, 0
	}
}
