package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Load the ignored-character (ICX) and restore-character
 *		(RCX) tables.
 *
 * Description: Small YAML files injected into the processor before a
 *		run.  Ignored characters are invisible to the engine
 *		and re-emitted in place; restore characters offer
 *		diacritic alternatives during matching.
 *
 *		ICX:	ignore: ["·", "\u00AD"]
 *		RCX:	restore:
 *			  - replace: "a"
 *			    with: ["á", "à"]
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type icx_file struct {
	Ignore []string `yaml:"ignore"`
}

type rcx_rule struct {
	Replace string   `yaml:"replace"`
	With    []string `yaml:"with"`
}

type rcx_file struct {
	Restore []rcx_rule `yaml:"restore"`
}

func (p *FSTProcessor) SetIgnoredChars(v bool) {
	if !v {
		p.ignored_chars = make(map[rune]bool)
	}
}

func (p *FSTProcessor) SetRestoreChars(v bool) {
	if !v {
		p.restore_map = make(map[rune][]rune)
	}
}

func (p *FSTProcessor) ParseICX(path string) error {
	var data, err = os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed icx_file
	if err = yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, entry := range parsed.Ignore {
		var runes = []rune(entry)
		if len(runes) != 1 {
			logger.Warn("ignoring multi-character ICX entry", "entry", entry)
			continue
		}
		p.ignored_chars[runes[0]] = true
	}
	return nil
}

func (p *FSTProcessor) ParseRCX(path string) error {
	var data, err = os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed rcx_file
	if err = yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, rule := range parsed.Restore {
		var from = []rune(rule.Replace)
		if len(from) != 1 {
			logger.Warn("ignoring multi-character RCX key", "entry", rule.Replace)
			continue
		}
		for _, alt := range rule.With {
			var to = []rune(alt)
			if len(to) != 1 {
				logger.Warn("ignoring multi-character RCX value", "entry", alt)
				continue
			}
			p.restore_map[from[0]] = append(p.restore_map[from[0]], to[0])
		}
	}
	return nil
}
