package store

var schemaSqlite = []string{
	`create table if not exists station (
		id integer primary key autoincrement,
		name text not null unique
	)`,
	`create table if not exists line (
		id integer primary key autoincrement,
		name text not null unique,
		color text not null
	)`,
	`create table if not exists section (
		id integer primary key autoincrement,
		line_id integer not null references line (id),
		distance integer not null
	)`,
	`create table if not exists section_station (
		section_id integer not null references section (id),
		station_id integer not null references station (id),
		direction text not null,
		primary key (section_id, direction)
	)`,
}

var schemaMysql = []string{
	`create table if not exists station (
		id bigint not null auto_increment primary key,
		name varchar(255) not null unique
	)`,
	`create table if not exists line (
		id bigint not null auto_increment primary key,
		name varchar(255) not null unique,
		color varchar(64) not null
	)`,
	`create table if not exists section (
		id bigint not null auto_increment primary key,
		line_id bigint not null,
		distance bigint not null,
		foreign key (line_id) references line (id)
	)`,
	`create table if not exists section_station (
		section_id bigint not null,
		station_id bigint not null,
		direction varchar(8) not null,
		primary key (section_id, direction),
		foreign key (section_id) references section (id),
		foreign key (station_id) references station (id)
	)`,
}
