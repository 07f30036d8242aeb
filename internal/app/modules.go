package app

import (
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/specialistvlad/forgego/modules/clone"
	"github.com/specialistvlad/forgego/modules/direct"
	"github.com/specialistvlad/forgego/modules/handlebased"
	"github.com/specialistvlad/forgego/modules/rawpatch"
	"github.com/specialistvlad/forgego/modules/reflective"
	"github.com/specialistvlad/forgego/modules/roundtrip"
)

// coreModules is the definitive list of all strategy modules compiled into
// the forgego binary.
func coreModules(cfg *Config) []registry.Module {
	return []registry.Module{
		&direct.Module{},
		&reflective.Module{},
		&clone.Module{},
		&roundtrip.Module{BaseDir: cfg.SnapshotDir},
		&handlebased.Module{},
		&rawpatch.Module{},
	}
}
