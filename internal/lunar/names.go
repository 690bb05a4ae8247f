package lunar

// Label sets. Chinese only.
var (
	monthNames = [12]string{
		"正月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "冬月", "腊月",
	}

	dayNames = [30]string{
		"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
		"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
		"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
	}

	zodiacAnimals = [12]string{
		"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪",
	}

	heavenlyStems = [10]string{
		"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸",
	}

	earthlyBranches = [12]string{
		"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥",
	}
)

const (
	leapPrefix = "闰"
	yearSuffix = "年"
)

// StemBranch is a heavenly stem and earthly branch pair naming a year.
type StemBranch struct {
	Stem   string
	Branch string
}

func (sb StemBranch) String() string {
	return sb.Stem + sb.Branch
}

// StemBranchOf returns the stem-branch pair for a lunar year.
// Stem and branch are indexed independently from 1900, so 1900 is 甲子.
func StemBranchOf(year int) StemBranch {
	offset := year - MinYear
	return StemBranch{
		Stem:   heavenlyStems[mod(offset, len(heavenlyStems))],
		Branch: earthlyBranches[mod(offset, len(earthlyBranches))],
	}
}

// ZodiacOf returns the zodiac animal for a lunar year.
func ZodiacOf(year int) string {
	return zodiacAnimals[mod(year-MinYear, len(zodiacAnimals))]
}

// MonthName returns the label of lunar month m, with the leap prefix when leap is set.
// It returns "" for m outside 1-12.
func MonthName(m int, leap bool) string {
	if m < 1 || m > len(monthNames) {
		return ""
	}
	if leap {
		return leapPrefix + monthNames[m-1]
	}
	return monthNames[m-1]
}

// DayName returns the label of lunar day d, or "" for d outside 1-30.
func DayName(d int) string {
	if d < 1 || d > len(dayNames) {
		return ""
	}
	return dayNames[d-1]
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
