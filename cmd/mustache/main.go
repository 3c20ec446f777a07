package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	mustache "github.com/runZeroInc/mustache/v2"
)

var rootCmd = &cobra.Command{
	Use: "mustache [--layout template] [data] template",
	Example: `  $ mustache data.yml template.mustache
  $ cat data.yml | mustache template.mustache
  $ mustache --layout wrapper.mustache data.yml template.mustache
  $ mustache --override over.yml data.yml template.mustache`,
	Args: cobra.RangeArgs(0, 2),
	RunE: run,
}

var layoutFile string
var overrideFile string

func main() {
	rootCmd.Flags().StringVar(&layoutFile, "layout", "", "location of layout file")
	rootCmd.Flags().StringVar(&overrideFile, "override", "", "location of data.yml override yml")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Usage()
	}

	var raw interface{}
	var templatePath string
	if len(args) == 1 {
		var err error
		raw, err = parseYAMLStdin()
		if err != nil {
			return err
		}
		templatePath = args[0]
	} else {
		var err error
		raw, err = parseYAMLFile(args[0])
		if err != nil {
			return err
		}
		templatePath = args[1]
	}

	if overrideFile != "" {
		override, err := parseYAMLFile(overrideFile)
		if err != nil {
			return err
		}
		raw = mergeYAML(raw, override)
	}

	root, err := yamlToValue(raw)
	if err != nil {
		return err
	}

	var output string
	if layoutFile != "" {
		output, err = mustache.RenderFileInLayout(templatePath, layoutFile, root)
	} else {
		output, err = mustache.RenderFile(templatePath, root)
	}
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

func parseYAMLStdin() (interface{}, error) {
	var data interface{}
	dec := yaml.NewDecoder(os.Stdin)
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func parseYAMLFile(filePath string) (interface{}, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var data interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// mergeYAML shallow-merges override's top-level keys over base's, when both
// decode to mappings.
func mergeYAML(base, override interface{}) interface{} {
	baseMap, ok := base.(map[interface{}]interface{})
	if !ok {
		return override
	}
	overrideMap, ok := override.(map[interface{}]interface{})
	if !ok {
		return override
	}
	for k, v := range overrideMap {
		baseMap[k] = v
	}
	return baseMap
}

// yamlToValue converts the generic interface{} tree produced by yaml.v2
// (map[interface{}]interface{} for mappings, []interface{} for sequences,
// plus scalars) into a mustache.Value. This is kept local to the CLI rather
// than folded into the general-purpose Encode, since that interface{}-keyed
// map shape is specific to yaml.v2's decoding convention.
func yamlToValue(v interface{}) (mustache.Value, error) {
	switch val := v.(type) {
	case nil:
		return mustache.None(), nil
	case bool:
		return mustache.Bool(val), nil
	case string:
		return mustache.Str(val), nil
	case int:
		return mustache.Str(fmt.Sprintf("%d", val)), nil
	case int64:
		return mustache.Str(fmt.Sprintf("%d", val)), nil
	case float64:
		return mustache.Str(fmt.Sprintf("%g", val)), nil
	case []interface{}:
		items := make([]mustache.Value, len(val))
		for i, item := range val {
			conv, err := yamlToValue(item)
			if err != nil {
				return mustache.Value{}, err
			}
			items[i] = conv
		}
		return mustache.ListOf(items), nil
	case map[interface{}]interface{}:
		bindings := make(map[string]mustache.Value, len(val))
		for k, item := range val {
			conv, err := yamlToValue(item)
			if err != nil {
				return mustache.Value{}, err
			}
			bindings[fmt.Sprintf("%v", k)] = conv
		}
		return mustache.Map(bindings), nil
	case map[string]interface{}:
		bindings := make(map[string]mustache.Value, len(val))
		for k, item := range val {
			conv, err := yamlToValue(item)
			if err != nil {
				return mustache.Value{}, err
			}
			bindings[k] = conv
		}
		return mustache.Map(bindings), nil
	default:
		return mustache.Str(fmt.Sprintf("%v", val)), nil
	}
}
