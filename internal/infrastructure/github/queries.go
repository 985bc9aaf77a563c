package github

const viewerQuery = `
query {
  viewer {
    login
  }
}`

const userProfileQuery = `
query($username: String!) {
  user(login: $username) {
    login
    name
    bio
    avatarUrl
    location
    email
    websiteUrl
    twitterUsername
    company
    followers {
      totalCount
    }
    following {
      totalCount
    }
    repositories(privacy: PUBLIC) {
      totalCount
    }
    createdAt
  }
}`

const userProfileAllQuery = `
query($username: String!) {
  user(login: $username) {
    login
    name
    bio
    avatarUrl
    location
    email
    websiteUrl
    twitterUsername
    company
    followers {
      totalCount
    }
    following {
      totalCount
    }
    repositories {
      totalCount
    }
    createdAt
  }
}`

const prStatsQuery = `
query($username: String!) {
  user(login: $username) {
    mergedPRs: pullRequests(states: MERGED) {
      totalCount
    }
    openPRs: pullRequests(states: OPEN) {
      totalCount
    }
    contributionsCollection {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
    }
  }
}`

const profileReadmeQuery = `
query($username: String!) {
  user(login: $username) {
    repository(name: $username) {
      object(expression: "HEAD:README.md") {
        ... on Blob {
          text
        }
      }
    }
  }
}`

const pinnedReposQuery = `
query($username: String!) {
  user(login: $username) {
    pinnedItems(first: 6, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name
        }
      }
    }
  }
}`

const repoDetailsQuery = `
query($username: String!) {
  user(login: $username) {
    repositories(first: 100, privacy: PUBLIC, orderBy: {field: UPDATED_AT, direction: DESC}) {
      nodes {
        name
        description
        url
        homepageUrl
        stargazerCount
        forkCount
        primaryLanguage {
          name
        }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          edges {
            size
            node {
              name
            }
          }
        }
        repositoryTopics(first: 10) {
          nodes {
            topic {
              name
            }
          }
        }
        updatedAt
        createdAt
      }
    }
  }
}`

const repoDetailsAllQuery = `
query($username: String!) {
  user(login: $username) {
    repositories(first: 100, orderBy: {field: UPDATED_AT, direction: DESC}) {
      nodes {
        name
        description
        url
        homepageUrl
        stargazerCount
        forkCount
        primaryLanguage {
          name
        }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          edges {
            size
            node {
              name
            }
          }
        }
        repositoryTopics(first: 10) {
          nodes {
            topic {
              name
            }
          }
        }
        updatedAt
        createdAt
      }
    }
  }
}`

const contributionsQuery = `
query($username: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $username) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

const mergedPRsQuery = `
query($username: String!, $first: Int!) {
  user(login: $username) {
    pullRequests(first: $first, states: [MERGED], orderBy: { field: UPDATED_AT, direction: DESC }) {
      nodes {
        number
        title
        url
        state
        mergedAt
        createdAt
        updatedAt
        repository {
          name
          owner {
            login
            avatarUrl
            ... on Organization {
              name
            }
            ... on User {
              name
            }
          }
        }
        baseRefName
        headRefName
      }
    }
  }
}`
