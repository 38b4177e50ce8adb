package migrations

// tables of the fixture models in internal/testmodels and internal/brokenmodels
var tables = []Migration{
	{
		Name: "parent_models",
		Up:   "CREATE TABLE `parent_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `name` TEXT)",
	},
	{
		Name: "child_models",
		Up:   "CREATE TABLE `child_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `parent_model_id` INTEGER, `name` TEXT)",
	},
	{
		Name: "post_models",
		Up:   "CREATE TABLE `post_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `title` TEXT)",
	},
	{
		Name: "comment_models",
		Up:   "CREATE TABLE `comment_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `body` TEXT, `commentable_id` INTEGER, `commentable_type` TEXT)",
	},
	{
		Name: "role_models",
		Up:   "CREATE TABLE `role_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `name` TEXT)",
	},
	{
		Name: "user_models",
		Up:   "CREATE TABLE `user_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `name` TEXT)",
	},
	{
		Name: "role_model_user_model",
		Up:   "CREATE TABLE `role_model_user_model` (`role_model_id` INTEGER, `user_model_id` INTEGER, PRIMARY KEY (`role_model_id`, `user_model_id`))",
	},
	{
		Name: "sub_models",
		Up:   "CREATE TABLE `sub_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `parent_model_id` INTEGER)",
	},
	{
		Name: "lonely_models",
		Up:   "CREATE TABLE `lonely_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `parent_model_id` INTEGER)",
	},
	{
		Name: "wrong_key_models",
		Up:   "CREATE TABLE `wrong_key_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT)",
	},
	{
		Name: "badge_models",
		Up:   "CREATE TABLE `badge_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `holder_model_id` INTEGER)",
	},
	{
		Name: "holder_models",
		Up:   "CREATE TABLE `holder_models` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `badgeable_id` INTEGER, `badgeable_type` TEXT)",
	},
}
