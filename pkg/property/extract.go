package property

import (
	"time"

	"github.com/notecal/notecal/pkg/vault"
	log "github.com/sirupsen/logrus"
)

// Of resolves the named property on a record. Absent or computed properties
// resolve to Absent. Lookup is guarded against panics so a malformed record
// can never take a render pass down with it.
func Of(rec vault.Record, propertyID string) (value Value) {
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("property lookup panicked for %q on %s: %v", propertyID, rec.Path, r)
			value = Absent
		}
	}()
	if propertyID == "" || rec.FrontMatter == nil {
		return Absent
	}
	raw, ok := rec.FrontMatter[propertyID]
	if !ok {
		return Absent
	}
	return Resolve(raw)
}

// ExtractDate reads the named property as a date. Any failure (absent
// property, non-date value, unparseable string) is treated as "no date" and
// logged at debug level only.
func ExtractDate(rec vault.Record, propertyID string) (time.Time, bool) {
	v := Of(rec, propertyID)
	if v.IsAbsent() {
		return time.Time{}, false
	}
	t, ok := v.AsDate()
	if !ok {
		log.Debugf("property %q on %s is not a date", propertyID, rec.Path)
		return time.Time{}, false
	}
	return t, true
}
