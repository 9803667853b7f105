package dates

import (
	"fmt"
	"time"
)

// ThaiMonthAbbr holds the short Thai month names, January first.
var ThaiMonthAbbr = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var thaiMonthNames = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// Display renders an ISO date as D/M/YYYY. Other input is returned as is.
func Display(iso string) string {
	t, err := Parse(iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// ThaiShort renders an ISO date as "D <month> YY" with a Buddhist-era year.
func ThaiShort(iso string) string {
	t, err := Parse(iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), ThaiMonthAbbr[t.Month()-1], (t.Year()+BuddhistOffset)%100)
}

// ThaiMonthYear renders a month heading such as "มกราคม 2567".
func ThaiMonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", thaiMonthNames[t.Month()-1], t.Year()+BuddhistOffset)
}
