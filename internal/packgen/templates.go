package packgen

import "fmt"

// Документы аддона строятся как map[string]any по образцу файлов пакета;
// encoding/json сортирует ключи, игре порядок не важен.

func blockDocument(ns, lower, model string) map[string]any {
	rotation := ns + ":head_rotation"
	upWhen := func(mod int) string {
		return fmt.Sprintf("q.block_state('minecraft:block_face') == 'up' && math.mod(q.block_state('%s'), 4) == %d", rotation, mod)
	}
	box := func(origin []int) map[string]any {
		return map[string]any{"origin": origin, "size": []int{8, 8, 8}}
	}
	yaw := func(condition string, deg int) map[string]any {
		return map[string]any{
			"condition": condition,
			"components": map[string]any{
				"minecraft:transformation": map[string]any{"rotation": []int{0, deg, 0}},
			},
		}
	}
	material := func(texture string) map[string]any {
		return map[string]any{"texture": texture, "ambient_occlusion": false, "render_method": "alpha_test"}
	}

	return map[string]any{
		"format_version": "1.21.60",
		"minecraft:block": map[string]any{
			"description": map[string]any{
				"identifier": fmt.Sprintf("%s:%s_head_block", ns, lower),
				"menu_category": map[string]any{
					"category":              "none",
					"is_hidden_in_commands": true,
				},
				"traits": map[string]any{
					"minecraft:placement_position": map[string]any{
						"enabled_states": []string{"minecraft:block_face"},
					},
				},
				"states": map[string]any{
					rotation: map[string]any{"values": map[string]any{"min": 0, "max": 15}},
				},
			},
			"components": map[string]any{
				"minecraft:liquid_detection": map[string]any{
					"detection_rules": []any{map[string]any{"can_contain_liquid": true}},
				},
				"minecraft:destructible_by_mining": map[string]any{"seconds_to_destroy": 1.5},
				"minecraft:collision_box":          box([]int{-4, 0, -4}),
				"minecraft:selection_box":          box([]int{-4, 0, -4}),
				"minecraft:geometry": map[string]any{
					"identifier": "geometry." + model,
					"bone_visibility": map[string]any{
						"up_0":    upWhen(0),
						"up_22_5": upWhen(1),
						"up_45":   upWhen(2),
						"up_67_5": upWhen(3),
						"side":    "q.block_state('minecraft:block_face') != 'up'",
					},
				},
				"minecraft:custom_components": []string{ns + ":rotation_comp", ns + ":check_noteblock"},
				"minecraft:tick": map[string]any{
					"interval_range": []int{10, 20},
					"looping":        true,
				},
				"minecraft:material_instances": map[string]any{
					"*":           material(lower + "_head"),
					"custom_down": material(lower + "_head"),
					"down":        map[string]any{"texture": "soul_sand", "render_method": "alpha_test"},
				},
				"minecraft:light_dampening": 0,
				"minecraft:placement_filter": map[string]any{
					"conditions": []any{map[string]any{"allowed_faces": []string{"up", "side"}}},
				},
			},
			"permutations": []any{
				yaw(fmt.Sprintf("q.block_state('%s') >= 4 || q.block_state('minecraft:block_face') == 'east'", rotation), -90),
				yaw(fmt.Sprintf("q.block_state('%s') >= 8 || q.block_state('minecraft:block_face') == 'south'", rotation), 180),
				yaw(fmt.Sprintf("q.block_state('%s') >= 12 || q.block_state('minecraft:block_face') == 'west'", rotation), 90),
				map[string]any{
					"condition": "q.block_state('minecraft:block_face') != 'up'",
					"components": map[string]any{
						"minecraft:collision_box": box([]int{-4, 4, 0}),
						"minecraft:selection_box": box([]int{-4, 4, 0}),
					},
				},
			},
		},
	}
}

func behaviorItemDocument(ns, lower string) map[string]any {
	return map[string]any{
		"format_version": "1.21.40",
		"minecraft:item": map[string]any{
			"description": map[string]any{
				"identifier": fmt.Sprintf("%s:%s_head", ns, lower),
				"menu_category": map[string]any{
					"category": "items",
					"group":    "itemGroup.name.skull",
				},
			},
			"components": map[string]any{
				"minecraft:block_placer":   map[string]any{"block": fmt.Sprintf("%s:%s_head_block", ns, lower)},
				"minecraft:max_stack_size": map[string]any{"value": 1},
				"minecraft:wearable":       map[string]any{"slot": "slot.armor.head"},
				"minecraft:rarity":         "uncommon",
			},
		},
	}
}

func resourceItemDocument(ns, lower string) map[string]any {
	return map[string]any{
		"format_version": "1.10",
		"minecraft:item": map[string]any{
			"description": map[string]any{
				"identifier": fmt.Sprintf("%s:%s_head_block", ns, lower),
				"category":   "null",
			},
			"components": map[string]any{"minecraft:rarity": "uncommon"},
		},
	}
}

func attachableDocument(ns, name, lower, model string) map[string]any {
	return map[string]any{
		"format_version": "1.10.0",
		"minecraft:attachable": map[string]any{
			"description": map[string]any{
				"identifier": fmt.Sprintf("%s:%s_head", ns, lower),
				"materials": map[string]any{
					"default":   "armor",
					"enchanted": "armor_enchanted",
				},
				"textures": map[string]any{
					"default":   "textures/blocks/skulls/" + name,
					"enchanted": "textures/misc/enchanted_item_glint",
				},
				"geometry": map[string]any{
					"default": fmt.Sprintf("geometry.%s_attachable", model),
				},
				"render_controllers": []string{"controller.render.item_default"},
			},
		},
	}
}

// recipeDocument - рецепт превращения from в to на верстаке
func recipeDocument(ns, to, from string) map[string]any {
	return map[string]any{
		"format_version": "1.20.10",
		"minecraft:recipe_shaped": map[string]any{
			"description": map[string]any{"identifier": fmt.Sprintf("%s:%s", ns, to)},
			"tags":        []string{"crafting_table"},
			"group":       "itemGroup.name.skull",
			"pattern":     []string{"#"},
			"key": map[string]any{
				"#": map[string]any{"item": fmt.Sprintf("%s:%s", ns, from)},
			},
			"unlock": []any{map[string]any{"item": fmt.Sprintf("%s:%s", ns, from)}},
			"result": map[string]any{"item": fmt.Sprintf("%s:%s", ns, to), "count": 1},
		},
	}
}
