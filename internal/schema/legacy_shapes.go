package schema

import "talkmigrate/internal/models"

// Variant names reported by the validator.
const (
	VariantOrganic  = "organic"
	VariantImported = "imported"
	VariantDeleted  = "deleted"
	VariantRespect  = "respect"
	VariantIgnored  = "ignored"
)

var importSource = Literal(models.ImportSource)

var storyBase = Shape{Fields: []Field{
	Required("_id", ObjectID),
	Required("id", Str),
	Required("url", URL),
	Required("title", Str),
	Required("scraped", Nullable(Time)),
	Required("metadata", Dict),
	Required("created_at", Time),
	Required("publication_date", Nullable(Time)),
}}

var storyOrganic = storyBase.Extend(VariantOrganic,
	Required("metadata", EmptyDict),
	Required("closedAt", Nullable(Time)),
	Required("closedMessage", Null),
	Required("settings", Dict),
	Required("tags", EmptyList),
	Required("type", Literal("assets")),
	Required("updated_at", Time),
	Required("author", Str),
	Required("description", Str),
	Required("image", URL),
	Required("modified_date", Null),
	Required("section", Str),
)

var storyImported = storyBase.Extend(VariantImported,
	Required("metadata", Doc(Required("source", importSource))),
)

var historyEntry = func(status Rule, extra ...Field) Rule {
	fields := append([]Field{
		Required("_id", ObjectID),
		Required("status", status),
		Required("created_at", Time),
	}, extra...)
	return Doc(fields...)
}

var userStatus = Doc(
	Required("username", Doc(
		Required("status", Enum("SET", "UNSET", "APPROVED")),
		Required("history", ListOf(historyEntry(
			Enum("SET", "UNSET", "REJECTED", "CHANGED", "APPROVED"),
			Required("assigned_by", Nullable(Str)),
		))),
	)),
	Required("banned", Doc(
		Required("status", Bool),
		Required("history", ListOf(historyEntry(Bool,
			Required("assigned_by", Str),
			Required("message", Str),
		))),
	)),
	Required("suspension", Doc(
		Required("until", Null),
		Required("history", EmptyList),
	)),
	Required("alwaysPremod", Doc(
		Required("status", Bool),
		Required("history", ListOf(historyEntry(Bool,
			Required("assigned_by", Str),
		))),
	)),
)

var userProfile = Any(
	Doc(
		Required("id", Str),
		Required("provider", Enum("google", "facebook")),
	),
	Doc(
		Required("id", Str),
		Required("provider", Literal(models.ProviderLocal)),
		Optional("metadata", Doc(
			Optional("confirmed_at", Time),
			Optional("recaptcha_required", Bool),
		)),
	),
)

var userMetadata = Doc(
	Optional("avatar", Any(URL, Literal(""), Prefix("data:"))),
	Optional("lastAccountDownload", Time),
	Optional("notifications", Doc(
		Required("settings", Doc(
			Optional("onReply", Bool),
			Optional("onFeatured", Bool),
			Optional("digestFrequency", Enum("HOURLY", "DAILY", "NONE")),
		)),
		Optional("digests", ListOf(Dict)),
	)),
	Optional("trust", Doc(
		Optional("comment", Doc(Required("karma", Int))),
		Optional("flag", Doc(Required("karma", Int))),
	)),
	Optional("scheduledDeletionDate", Time),
)

var userOrganic = Shape{Name: VariantOrganic, Fields: []Field{
	Required("_id", ObjectID),
	Required("id", Str),
	Required("status", userStatus),
	Required("role", Enum("ADMIN", "STAFF", "COMMENTER", "MODERATOR")),
	Required("ignoresUsers", ListOf(Str)),
	Required("username", Str),
	Required("lowercaseUsername", Str),
	Optional("password", Str),
	Required("profiles", ListOf(userProfile)),
	Required("tokens", EmptyList),
	Required("tags", EmptyList),
	Required("created_at", Time),
	Required("updated_at", Time),
	Required("__v", Int),
	Optional("metadata", userMetadata),
	Optional("action_counts", Dict),
}}

var userImported = Shape{Name: VariantImported, Fields: []Field{
	Required("_id", ObjectID),
	Required("id", Str),
	Required("username", Str),
	Required("lowercaseUsername", Str),
	Required("profiles", ListOf(Doc(
		Required("provider", Literal("disqus")),
		Required("id", Str),
	))),
	Required("metadata", Doc(
		Required("source", importSource),
		Optional("trust", Dict),
	)),
	Required("created_at", Time),
	Optional("updated_at", Time),
	Optional("action_counts", Dict),
}}

var commentActionCounts = Doc(
	Optional("respect", Int),
	Optional("flag", Int),
	Optional("flag_comment_other", Int),
	Optional("flag_comment_offensive", Int),
	Optional("flag_spam_comment", Int),
	Optional("dontagree", Int),
	Optional("flag_trust", Int),
	Optional("flag_comment_spam", Int),
)

var commentBase = Shape{Fields: []Field{
	Required("_id", ObjectID),
	Required("status", Enum(models.LegacyStatusAccepted, "REJECTED", "NONE")),
	Optional("status_history", ListOf(Doc(
		Required("assigned_by", Nullable(Str)),
		Required("type", Enum(models.LegacyStatusAccepted, "NONE", "REJECTED", "SYSTEM_WITHHELD")),
		Required("created_at", Time),
	))),
	Required("id", Str),
	Required("author_id", Str),
	Required("parent_id", Nullable(Str)),
	Required("created_at", Time),
	Required("updated_at", Time),
	Required("asset_id", Str),
	Required("body", Str),
	Required("reply_count", Int),
	Optional("action_counts", commentActionCounts),
}}

var commentTag = Doc(
	Required("assigned_by", Str),
	Required("tag", Doc(
		Required("permissions", Doc(
			Required("public", Literal(true)),
			Required("roles", ListOf(Enum("ADMIN", "MODERATOR"))),
			Required("self", Bool),
		)),
		Required("models", ListOf(Literal("COMMENTS"))),
		Required("name", Enum("STAFF", models.LegacyTagOffTopic, "FEATURED")),
		Required("created_at", Time),
	)),
	Required("created_at", Time),
)

var commentOrganic = commentBase.Extend(VariantOrganic,
	Required("body_history", ListOf(Doc(
		Required("_id", ObjectID),
		Required("body", Str),
		Required("created_at", Time),
	))),
	Required("tags", ListOf(commentTag)),
	Required("metadata", Doc(
		Required("richTextBody", Str),
		Optional("akismet", Bool),
	)),
	Required("__v", Int),
)

var commentImported = commentBase.Extend(VariantImported,
	Required("metadata", Doc(
		Required("richTextBody", Str),
		Required("source", importSource),
	)),
)

// commentDeleted is keyed by the presence of deleted_at together with the nulled body and author.
var commentDeleted = Shape{Name: VariantDeleted, Fields: []Field{
	Required("_id", ObjectID),
	Required("id", Str),
	Required("body", Null),
	Required("body_history", EmptyList),
	Required("asset_id", Str),
	Required("author_id", Null),
	Required("status_history", EmptyList),
	Required("status", Literal(models.LegacyStatusAccepted)),
	Required("parent_id", Nullable(Str)),
	Required("reply_count", Int),
	Required("action_counts", EmptyDict),
	Required("tags", EmptyList),
	Required("metadata", EmptyDict),
	Required("deleted_at", Time),
	Required("created_at", Time),
	Required("updated_at", Time),
}}

var actionIgnored = Shape{Name: VariantIgnored, Open: true, Fields: []Field{
	Required("action_type", Enum("FLAG", "DONTAGREE")),
}}

var actionRespect = Shape{Name: VariantRespect, Fields: []Field{
	Required("_id", ObjectID),
	Required("action_type", Literal(models.LegacyActionRespect)),
	Required("group_id", Null),
	Required("item_id", Str),
	Required("item_type", Literal("COMMENTS")),
	Required("user_id", Str),
	Required("__v", Int),
	Required("created_at", Time),
	Required("id", Str),
	Required("metadata", EmptyDict),
	Required("updated_at", Time),
}}
