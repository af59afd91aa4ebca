package mcpserver

// RecipeFormat describes the recipe file layout that cookfind understands.
const RecipeFormat = `# cookfind Recipe Format

Recipes are UTF-8 text files in one or more recipe directories.

## Files

- ` + "`" + `*.cook` + "`" + ` is a recipe, ` + "`" + `*.menu` + "`" + ` is a menu. Extensions are matched case-insensitively.
- The recipe name is the file name without its extension. Sub-directories group recipes:
  ` + "`" + `breakfast/pancakes` + "`" + ` names ` + "`" + `breakfast/pancakes.cook` + "`" + `.
- When several directories are configured, the first one holding a name wins.

## Front-matter

An optional YAML block delimited by ` + "`" + `---` + "`" + ` lines at the very top of the file.

` + "```" + `yaml
---
title: Fluffy Pancakes     # display title, defaults to the file name
servings: 4                # integer
tags: [breakfast, sweet]   # list or comma-separated string; "tag" also accepted
image: https://example.com/pancakes.jpg   # also: images, picture, pictures
---
` + "```" + `

Malformed YAML makes the recipe unreadable; fix it rather than relying on a fallback.

## References

A reference to another recipe is an ingredient whose name starts with ` + "`" + `./` + "`" + ` or ` + "`" + `../` + "`" + `:

` + "```" + `
Pour @./sauces/syrup{2%tbsp} over the stack.
` + "```" + `

The path is relative to the referring file. Without an extension ` + "`" + `.cook` + "`" + ` is assumed.
Plain ingredients such as ` + "`" + `@flour{200%g}` + "`" + ` are not references.

## Images

Images sit next to the recipe and share its name. Extensions, in order of preference:
jpg, jpeg, png, webp.

- ` + "`" + `pancakes.jpg` + "`" + `: title image.
- ` + "`" + `pancakes.3.jpg` + "`" + `: image for step 3.
- ` + "`" + `pancakes.1.2.jpg` + "`" + `: image for section 1, step 2.

Steps are numbered from 1; sections from 0.
`
