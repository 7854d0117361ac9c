package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Faker draws the raw field values of a record. Implementations need not be
// safe for concurrent use; each worker owns one.
type Faker interface {
	Name() string
	Email() string
	CreatedAt() time.Time
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
		"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
		"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
		"Kenneth", "Carol", "Kevin", "Amanda", "Brian", "Melissa", "George", "Deborah",
		"Timothy", "Stephanie", "Ronald", "Rebecca", "Jason", "Laura", "Edward", "Sharon",
		"Jeffrey", "Cynthia", "Ryan", "Kathleen", "Jacob", "Amy", "Gary", "Angela",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
		"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
		"Carter", "Roberts", "Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker",
		"Cruz", "Edwards", "Collins", "Reyes", "Stewart", "Morris", "Morales", "Murphy",
	}
	emailDomains = []string{
		"example.com", "example.org", "example.net", "gmail.com", "yahoo.com", "hotmail.com",
		"outlook.com", "icloud.com", "proton.me", "mail.com", "aol.com", "fastmail.com",
	}
)

type DataGenerator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewDataGenerator returns a generator seeded with seed, or with the clock when seed is 0.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

func (g *DataGenerator) pick(list []string) string {
	return list[g.rand.Intn(len(list))]
}

func (g *DataGenerator) Name() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

// Email builds a lowercase address from one of several common local-part shapes.
func (g *DataGenerator) Email() string {
	first := strings.ToLower(g.pick(firstNames))
	last := strings.ToLower(g.pick(lastNames))
	domain := g.pick(emailDomains)

	var local string
	switch g.rand.Intn(8) {
	case 0:
		local = first + "." + last
	case 1:
		local = first + last
	case 2:
		local = first[:1] + last
	case 3:
		local = last + "." + first
	case 4:
		local = fmt.Sprintf("%s.%s%d", first, last, g.rand.Intn(9999)+1)
	case 5:
		local = fmt.Sprintf("%s_%s%d", first, last, g.rand.Intn(99)+1)
	case 6:
		local = fmt.Sprintf("%s%d", first, 1950+g.rand.Intn(60))
	default:
		local = fmt.Sprintf("%s%s%d", first[:1], last, g.rand.Intn(9999)+1)
	}
	return local + "@" + domain
}

// CreatedAt returns a whole-second timestamp between the start of the current
// decade and now.
func (g *DataGenerator) CreatedAt() time.Time {
	now := g.now().UTC().Truncate(time.Second)
	start := time.Date(now.Year()-now.Year()%10, time.January, 1, 0, 0, 0, 0, time.UTC)

	span := int64(now.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rand.Int63n(span+1)) * time.Second)
}
