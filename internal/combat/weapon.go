package combat

import "gopkg.in/yaml.v3"

// DamageBand is one `[min_m, max_m)` distance range of a weapon's damage
// table, with an optional per-body-part override (spec §3, "Weapon").
type DamageBand struct {
	MinM          float32            `yaml:"minM"`
	MaxM          float32            `yaml:"maxM"`
	BaseDamage    float32            `yaml:"baseDamage"`
	PartOverrides map[BodyPart]float32 `yaml:"-"`
	// PartOverridesYAML exists because BodyPart isn't a YAML scalar key
	// type by default; the loader translates string keys into the
	// BodyPart-keyed map above.
	PartOverridesYAML map[string]float32 `yaml:"partOverrides,omitempty"`
}

// Weapon is an immutable configuration object the combat kernel consumes
// (spec §1, "the weapon balance tables themselves (treated as
// configuration the core consumes)"; spec §3, "Weapon").
type Weapon struct {
	ID                  string       `yaml:"id"`
	Name                string       `yaml:"name"`
	RPM                 float32      `yaml:"rpm"`
	MagazineSize        int          `yaml:"magazineSize"`
	ReloadMs            uint64       `yaml:"reloadMs"`
	DamageBands         []DamageBand `yaml:"damageBands"`
	HeadshotMultiplier  float32      `yaml:"headshotMultiplier"`
	BulletVelocityMps   float32      `yaml:"bulletVelocityMps"`
	HipfireSpreadRad    float32      `yaml:"hipfireSpreadRad"`
	ADSSpreadRad        float32      `yaml:"adsSpreadRad"`
	VerticalRecoil      float32      `yaml:"verticalRecoil"`
	RecoilRecoveryMs    uint64       `yaml:"recoilRecoveryMs"`
	ADSMs               uint64       `yaml:"adsMs"`
	SprintToFireMs      uint64       `yaml:"sprintToFireMs"`
	SuppressionFactor   float32      `yaml:"suppressionFactor"`
	FlinchResistance    float32      `yaml:"flinchResistance"`
	FlinchDurationShots int          `yaml:"flinchDurationShots"`
}

// DamageAt returns the damage this weapon deals at distanceM against
// bodyPart, using the first band whose [MinM, MaxM) contains the distance
// (spec §4.4, "weapon.damage_at(distance, body_part)"). A head hit uses
// the band's explicit override if present, otherwise the base damage
// scaled by HeadshotMultiplier.
func (w Weapon) DamageAt(distanceM float32, part BodyPart) float32 {
	band, ok := w.bandFor(distanceM)
	if !ok {
		return 0
	}
	if override, ok := band.PartOverrides[part]; ok {
		return override
	}
	if part == Head {
		return band.BaseDamage * w.HeadshotMultiplier
	}
	return band.BaseDamage
}

func (w Weapon) bandFor(distanceM float32) (DamageBand, bool) {
	for _, b := range w.DamageBands {
		if distanceM >= b.MinM && distanceM < b.MaxM {
			return b, true
		}
	}
	// The last band's upper bound is inclusive (spec §4.4 mirrors §4.4's
	// band-partition rule for hit resolution: "upper bound of the last
	// band is inclusive").
	if n := len(w.DamageBands); n > 0 {
		last := w.DamageBands[n-1]
		if distanceM == last.MaxM {
			return last, true
		}
	}
	return DamageBand{}, false
}

// WeaponSet is a named table of weapons, the shape LoadWeaponYAML and
// DefaultWeapons both return.
type WeaponSet map[string]Weapon

// LoadWeaponYAML parses a weapon balance table from YAML (spec §6,
// "weapon balance tables ... treated as configuration the core
// consumes"). Grounded on theRebelliousNerd-codenerd's use of
// gopkg.in/yaml.v3 for its own rule/config tables.
func LoadWeaponYAML(data []byte) (WeaponSet, error) {
	var raw struct {
		Weapons []Weapon `yaml:"weapons"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	set := make(WeaponSet, len(raw.Weapons))
	for _, w := range raw.Weapons {
		for i, band := range w.DamageBands {
			if len(band.PartOverridesYAML) == 0 {
				continue
			}
			band.PartOverrides = make(map[BodyPart]float32, len(band.PartOverridesYAML))
			for key, v := range band.PartOverridesYAML {
				if part, ok := parseBodyPart(key); ok {
					band.PartOverrides[part] = v
				}
			}
			w.DamageBands[i] = band
		}
		set[w.ID] = w
	}
	return set, nil
}

func parseBodyPart(s string) (BodyPart, bool) {
	switch s {
	case "lowerTorso":
		return LowerTorso, true
	case "upperTorso":
		return UpperTorso, true
	case "neck":
		return Neck, true
	case "head":
		return Head, true
	default:
		return 0, false
	}
}

// DefaultWeapons returns the reference balance table used when no YAML
// configuration is supplied, embedded as a fallback the way the teacher
// embeds its literal Weapons map (internal/game/weapons.go) — except here
// it is the *fallback*, not the primary configuration surface (spec §1).
func DefaultWeapons() WeaponSet {
	return WeaponSet{
		"rifle-a": {
			ID: "rifle-a", Name: "Standard Rifle",
			RPM: 700, MagazineSize: 30, ReloadMs: 2200,
			DamageBands: []DamageBand{
				{MinM: 0, MaxM: 50, BaseDamage: 32},
				{MinM: 50, MaxM: 150, BaseDamage: 24},
				{MinM: 150, MaxM: 400, BaseDamage: 16},
			},
			HeadshotMultiplier: 2.5,
			BulletVelocityMps:  730,
			HipfireSpreadRad:   0.06,
			ADSSpreadRad:       0.015,
			VerticalRecoil:     0.018,
			RecoilRecoveryMs:   120,
			ADSMs:              220,
			SprintToFireMs:     180,
			SuppressionFactor:  0.35,
			FlinchResistance:   0.2,
			FlinchDurationShots: 3,
		},
		"smg-b": {
			ID: "smg-b", Name: "Compact SMG",
			RPM: 900, MagazineSize: 25, ReloadMs: 1800,
			DamageBands: []DamageBand{
				{MinM: 0, MaxM: 25, BaseDamage: 24},
				{MinM: 25, MaxM: 75, BaseDamage: 16},
				{MinM: 75, MaxM: 200, BaseDamage: 9},
			},
			HeadshotMultiplier: 2.2,
			BulletVelocityMps:  380,
			HipfireSpreadRad:   0.09,
			ADSSpreadRad:       0.03,
			VerticalRecoil:     0.012,
			RecoilRecoveryMs:   90,
			ADSMs:              150,
			SprintToFireMs:     120,
			SuppressionFactor:  0.22,
			FlinchResistance:   0.15,
			FlinchDurationShots: 2,
		},
		"dmr-c": {
			ID: "dmr-c", Name: "Designated Marksman Rifle",
			RPM: 280, MagazineSize: 20, ReloadMs: 2600,
			DamageBands: []DamageBand{
				{MinM: 0, MaxM: 100, BaseDamage: 48},
				{MinM: 100, MaxM: 300, BaseDamage: 40},
				{MinM: 300, MaxM: 700, BaseDamage: 30},
			},
			HeadshotMultiplier: 3.0,
			BulletVelocityMps:  850,
			HipfireSpreadRad:   0.10,
			ADSSpreadRad:       0.008,
			VerticalRecoil:     0.05,
			RecoilRecoveryMs:   260,
			ADSMs:              320,
			SprintToFireMs:     260,
			SuppressionFactor:  0.55,
			FlinchResistance:   0.3,
			FlinchDurationShots: 4,
		},
	}
}
